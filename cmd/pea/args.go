package main

import (
	"bytes"
	"io"
	"strings"

	"github.com/arko-martian/peacore/internal/resolver"
	"github.com/arko-martian/peacore/pkgerr"
)

// parseRootArgs turns CLI arguments of the form "name@req" into
// resolver Roots. A bare name with no "@" is treated as requiring "*".
func parseRootArgs(args []string) ([]resolver.Root, error) {
	if len(args) == 0 {
		return nil, pkgerr.New(pkgerr.ConfigValidation, "install requires at least one package argument")
	}

	roots := make([]resolver.Root, 0, len(args))
	for _, a := range args {
		name, req := a, "*"
		if i := strings.LastIndex(a, "@"); i > 0 {
			name, req = a[:i], a[i+1:]
		}
		roots = append(roots, resolver.Root{Name: name, Req: req})
	}
	return roots, nil
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
