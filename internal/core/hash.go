package core

import (
	"fmt"
	"hash/fnv"
)

// HashContent returns a short stable digest of content, used as an ETag.
func HashContent(content []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(content)
	return fmt.Sprintf("%016x", h.Sum64())
}
