package imcombine

import (
	"fmt"

	"github.com/astropop-go/imcombine/frame"
)

const (
	metaKeyNImages = "astropop imcombine nimages"
	metaKeyMethod  = "astropop imcombine method"
)

// mergeHeader assembles the output frame's metadata from the input stack
// according to mode, then appends the provenance keys last regardless of
// policy.
func mergeHeader(frames []*frame.Frame, mode MergeMode, keys []string, method Method) (*frame.Meta, error) {
	out := frame.NewMeta()

	switch mode {
	case MergeNone:
		// nothing to copy; provenance only.

	case MergeFirst:
		if len(frames) > 0 {
			copyAll(out, frames[0].Meta)
		}

	case MergeOnlyEqual:
		if len(frames) > 0 {
			first := frames[0].Meta
			for _, key := range first.Keys() {
				v0, _ := first.Get(key)
				equal := true
				for _, fr := range frames[1:] {
					v, ok := fr.Meta.Get(key)
					if !ok || v != v0 {
						equal = false
						break
					}
				}
				if equal {
					out.Set(key, v0)
				}
			}
		}

	case MergeSelectedKeys:
		if len(keys) == 0 {
			return nil, &ConfigError{Msg: "No key assigned"}
		}
		for _, key := range keys {
			for _, fr := range frames {
				if v, ok := fr.Meta.Get(key); ok {
					out.Set(key, v)
					break
				}
			}
		}

	default:
		return nil, &ConfigError{Msg: fmt.Sprintf("unknown merge mode %q", mode)}
	}

	out.Set(metaKeyNImages, len(frames))
	out.Set(metaKeyMethod, string(method))
	return out, nil
}

func copyAll(dst, src *frame.Meta) {
	for _, key := range src.Keys() {
		v, _ := src.Get(key)
		dst.Set(key, v)
	}
}
