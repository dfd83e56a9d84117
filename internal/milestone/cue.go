package milestone

import (
	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// cueToJSON evaluates a CUE manifest and exports it as JSON, which the
// strict YAML decoder then reads like any other manifest. Definitions and
// hidden fields are not exported, so a file may carry its own schema.
func cueToJSON(path string, src []byte) ([]byte, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename(path))
	if err := v.Err(); err != nil {
		return nil, &ManifestError{Field: "cue", Message: cueerrors.Details(err, nil)}
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, &ManifestError{Field: "cue", Message: cueerrors.Details(err, nil)}
	}

	data, err := v.MarshalJSON()
	if err != nil {
		return nil, &ManifestError{Field: "cue", Message: cueerrors.Details(err, nil)}
	}
	return data, nil
}
