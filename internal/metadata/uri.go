// Package metadata provides the namespace/version/name URI convention used
// to identify entities, per spec.md §4.J.
package metadata

import (
	"strings"

	"github.com/sintef/dlite-go/internal/errors"
)

// Join builds a metadata URI of the form "namespace/version/name".
func Join(namespace, version, name string) string {
	return namespace + "/" + version + "/" + name
}

// Split parses a metadata URI of the form "namespace/version/name".
//
// The name is everything after the last slash, the version is everything
// between the last two slashes, and the namespace is everything before the
// second-to-last slash. All three segments must be non-empty.
func Split(uri string) (namespace, version, name string, err error) {
	last := strings.LastIndex(uri, "/")
	if last < 0 {
		return "", "", "", errors.WrapWithCode(errors.New(uri), errors.ErrFormat,
			"metadata uri must contain at least two '/'")
	}
	name = uri[last+1:]

	rest := uri[:last]
	second := strings.LastIndex(rest, "/")
	if second < 0 {
		return "", "", "", errors.WrapWithCode(errors.New(uri), errors.ErrFormat,
			"metadata uri must contain at least two '/'")
	}
	version = rest[second+1:]
	namespace = rest[:second]

	if namespace == "" || version == "" || name == "" {
		return "", "", "", errors.WrapWithCode(errors.New(uri), errors.ErrFormat,
			"metadata uri segments must be non-empty")
	}

	return namespace, version, name, nil
}
