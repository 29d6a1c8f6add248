package nocodb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// PageInfo is the pagination block of a list response.
type PageInfo struct {
	TotalRows   int  `json:"totalRows"`
	Page        int  `json:"page"`
	PageSize    int  `json:"pageSize"`
	IsFirstPage bool `json:"isFirstPage"`
	IsLastPage  bool `json:"isLastPage"`
}

// ListPage is a page of typed records.
type ListPage[T any] struct {
	List     []T      `json:"list"`
	PageInfo PageInfo `json:"pageInfo"`
}

// RecordID is the wire shape NocoDB expects for delete, link and unlink
// payloads. The id value may be a string or a number; it is passed through
// unchanged.
type RecordID struct {
	ID any `json:"id"`
}

// List fetches records from a table. Field names in the query are rewritten
// to the backend's capitalized column convention before the request is sent.
func List[T any](ctx context.Context, c *Client, table string, q Query) (*ListPage[T], error) {
	var page ListPage[T]
	if err := c.doJSON(ctx, http.MethodGet, c.recordsURL(table)+q.encode(), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single record by id. An optional field list restricts the
// returned columns.
func Get[T any](ctx context.Context, c *Client, table, recordID string, fields ...string) (*T, error) {
	u := c.recordsURL(table) + "/" + recordID
	if len(fields) > 0 {
		u += Query{Fields: joinFields(fields)}.encode()
	}
	var record T
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func joinFields(fields []string) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += ","
		}
		out += f
	}
	return out
}

// Create inserts one or more records. The payload is always an array on the
// wire, and every record key is capitalized to match the column convention.
func Create[T any](ctx context.Context, c *Client, table string, records ...T) ([]T, error) {
	body, err := marshalRecords(records)
	if err != nil {
		return nil, err
	}
	var created []T
	if err := c.doJSON(ctx, http.MethodPost, c.recordsURL(table), body, &created); err != nil {
		return nil, err
	}
	return created, nil
}

// CreateOne inserts a single record and unwraps the first element of the
// response.
func CreateOne[T any](ctx context.Context, c *Client, table string, record T) (*T, error) {
	created, err := Create(ctx, c, table, record)
	if err != nil {
		return nil, err
	}
	if len(created) == 0 {
		return nil, nil
	}
	return &created[0], nil
}

// Update patches one or more records; each must carry its id.
func Update[T any](ctx context.Context, c *Client, table string, records ...T) ([]T, error) {
	body, err := marshalRecords(records)
	if err != nil {
		return nil, err
	}
	var updated []T
	if err := c.doJSON(ctx, http.MethodPatch, c.recordsURL(table), body, &updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// UpdateOne patches a single record and unwraps the first element of the
// response.
func UpdateOne[T any](ctx context.Context, c *Client, table string, record T) (*T, error) {
	updated, err := Update(ctx, c, table, record)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, nil
	}
	return &updated[0], nil
}

// marshalRecords converts typed records into the array-of-capitalized-maps
// wire shape.
func marshalRecords[T any](records []T) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(records))
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("nocodb: encode record: %w", err)
		}
		var m map[string]any
		if err := json.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("nocodb: encode record: %w", err)
		}
		out = append(out, capitalizeKeys(m))
	}
	return out, nil
}

// Delete removes records. recordIDs may be a single id, a slice of ids, or a
// slice of RecordID / maps carrying an "id" key; all forms are normalized to
// the [{"id": ...}] wire shape.
func (c *Client) Delete(ctx context.Context, table string, recordIDs any) error {
	body, err := NormalizeRecordIDs(recordIDs)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, c.recordsURL(table), body, nil)
}

// NormalizeRecordIDs converts the accepted id forms into the delete/link
// payload shape.
func NormalizeRecordIDs(v any) ([]RecordID, error) {
	switch t := v.(type) {
	case nil:
		return nil, fmt.Errorf("nocodb: no record ids given")
	case []RecordID:
		return t, nil
	case []string:
		out := make([]RecordID, len(t))
		for i, id := range t {
			out[i] = RecordID{ID: id}
		}
		return out, nil
	case []int:
		out := make([]RecordID, len(t))
		for i, id := range t {
			out[i] = RecordID{ID: id}
		}
		return out, nil
	case []map[string]any:
		out := make([]RecordID, len(t))
		for i, m := range t {
			id, err := idFromMap(m)
			if err != nil {
				return nil, err
			}
			out[i] = id
		}
		return out, nil
	case []any:
		out := make([]RecordID, len(t))
		for i, item := range t {
			id, err := normalizeOne(item)
			if err != nil {
				return nil, err
			}
			out[i] = id
		}
		return out, nil
	default:
		id, err := normalizeOne(v)
		if err != nil {
			return nil, err
		}
		return []RecordID{id}, nil
	}
}

func normalizeOne(v any) (RecordID, error) {
	switch t := v.(type) {
	case RecordID:
		return t, nil
	case string:
		return RecordID{ID: t}, nil
	case int:
		return RecordID{ID: t}, nil
	case int64:
		return RecordID{ID: t}, nil
	case float64:
		return RecordID{ID: t}, nil
	case map[string]any:
		return idFromMap(t)
	default:
		return RecordID{}, fmt.Errorf("nocodb: unsupported record id type %T", v)
	}
}

func idFromMap(m map[string]any) (RecordID, error) {
	for _, key := range []string{"id", "Id", "ID"} {
		if id, ok := m[key]; ok {
			return RecordID{ID: id}, nil
		}
	}
	return RecordID{}, fmt.Errorf("nocodb: record object has no id key")
}

// Count returns the number of records matching the filter. Only the Where and
// ViewID parts of the query apply.
func (c *Client) Count(ctx context.Context, table string, q Query) (int, error) {
	u := c.recordsURL(table) + "/count" + Query{Where: q.Where, ViewID: q.ViewID}.encode()
	var out struct {
		Count int `json:"count"`
	}
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// ListLinked fetches the records linked to recordID through a link field.
func ListLinked[T any](ctx context.Context, c *Client, table, linkFieldID string, recordID string, q Query) (*ListPage[T], error) {
	var page ListPage[T]
	u := c.linksURL(table, linkFieldID, recordID) + q.encode()
	if err := c.doJSON(ctx, http.MethodGet, u, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Link attaches records to recordID through a link field.
func (c *Client) Link(ctx context.Context, table, linkFieldID string, recordID string, linkedIDs any) error {
	body, err := NormalizeRecordIDs(linkedIDs)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodPost, c.linksURL(table, linkFieldID, recordID), body, nil)
}

// Unlink detaches records from recordID through a link field.
func (c *Client) Unlink(ctx context.Context, table, linkFieldID string, recordID string, linkedIDs any) error {
	body, err := NormalizeRecordIDs(linkedIDs)
	if err != nil {
		return err
	}
	return c.doJSON(ctx, http.MethodDelete, c.linksURL(table, linkFieldID, recordID), body, nil)
}

// FormatID renders a numeric or string id as the path segment form.
func FormatID(id any) string {
	switch t := id.(type) {
	case string:
		return t
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}
