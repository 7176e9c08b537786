// Package counter keeps document download totals in a Redis hash.
package counter

import (
	"strconv"
	"strings"

	"github.com/rentcourt/ftpr/internal/pkg/cache"
)

const documentDownloadsKey = "documents:counters:downloads"

const (
	KindBlank = "blank"
	KindCase  = "case"
)

// Downloads is the total for one template, split by blank and filled copies.
type Downloads struct {
	Blank int64 `json:"blank"`
	Case  int64 `json:"case"`
}

func field(docType, kind string) string {
	return docType + ":" + kind
}

// AddDocumentDownload increments the counter for one rendered PDF.
func AddDocumentDownload(docType, kind string) error {
	return cache.GetClient().HIncrBy(cache.Context(), documentDownloadsKey, field(docType, kind), 1).Err()
}

// DocumentDownloads returns the totals keyed by template. Malformed fields
// are skipped.
func DocumentDownloads() (map[string]Downloads, error) {
	data, err := cache.GetClient().HGetAll(cache.Context(), documentDownloadsKey).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]Downloads, len(data))
	for k, v := range data {
		docType, kind, ok := strings.Cut(k, ":")
		if !ok {
			continue
		}
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		d := out[docType]
		switch kind {
		case KindBlank:
			d.Blank += n
		case KindCase:
			d.Case += n
		default:
			continue
		}
		out[docType] = d
	}
	return out, nil
}
