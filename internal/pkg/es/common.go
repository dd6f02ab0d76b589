package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

// docID is a hit's id decoded from its source
type docID struct {
	ID uint64 `json:"id"`
}

// indexDoc writes doc with an external version so replayed events never overwrite newer state
func indexDoc(ctx context.Context, client *elasticsearch.TypedClient, index string, id uint64, doc any, version int64) error {
	_, err := client.Index(index).
		Id(strconv.FormatUint(id, 10)).
		Document(doc).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}
	return nil
}

func deleteDoc(ctx context.Context, client *elasticsearch.TypedClient, index string, id uint64) error {
	_, err := client.Delete(index, strconv.FormatUint(id, 10)).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

// searchIDs runs req and returns hit ids in score order
func searchIDs(ctx context.Context, req *search.Search) ([]uint64, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var d docID
		if err = json.Unmarshal(hit.Source_, &d); err != nil {
			continue
		}
		ids = append(ids, d.ID)
	}
	return ids, nil
}
