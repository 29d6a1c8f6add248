package nocodb

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tree struct {
	ID      int    `json:"id,omitempty"`
	Name    string `json:"name,omitempty"`
	Species string `json:"species,omitempty"`
}

type capturedRequest struct {
	Method string
	Path   string
	Query  map[string][]string
	Body   []byte
}

// newTestClient starts a fake NocoDB base that records the request and
// replies with the given status and body.
func newTestClient(t *testing.T, status int, responseBody string) (*Client, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Method = r.Method
		captured.Path = r.URL.Path
		captured.Query = r.URL.Query()
		captured.Body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, "test-key"), captured
}

func TestList_BuildsURLAndDecodes(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `{
		"list": [{"Id": 1, "Name": "Oak", "Species": "Quercus robur"}],
		"pageInfo": {"totalRows": 1, "page": 1, "pageSize": 25, "isFirstPage": true, "isLastPage": true}
	}`)
	c.RegisterTable("treeInfo", "tbl123")

	page, err := List[tree](context.Background(), c, "treeInfo", Query{
		Fields: "name,species",
		Where:  "(species,like,%oak%)",
		Limit:  25,
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, captured.Method)
	assert.Equal(t, "/api/v2/tables/tbl123/records", captured.Path)
	assert.Equal(t, "Name,Species", captured.Query["fields"][0])
	assert.Equal(t, "(Species,like,%oak%)", captured.Query["where"][0])
	assert.Equal(t, "25", captured.Query["limit"][0])

	require.Len(t, page.List, 1)
	assert.Equal(t, "Oak", page.List[0].Name)
	assert.Equal(t, 1, page.PageInfo.TotalRows)
	assert.True(t, page.PageInfo.IsLastPage)
}

func TestList_UnregisteredTableUsesNameAsID(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `{"list": [], "pageInfo": {}}`)

	page, err := List[tree](context.Background(), c, "tblraw", Query{})
	require.NoError(t, err)
	assert.Equal(t, "/api/v2/tables/tblraw/records", captured.Path)
	assert.Empty(t, page.List)
}

func TestGet_WithFieldSelection(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `{"Id": 7, "Name": "Linden"}`)
	c.RegisterTable("treeInfo", "tbl123")

	record, err := Get[tree](context.Background(), c, "treeInfo", "7", "name")
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/tables/tbl123/records/7", captured.Path)
	assert.Equal(t, "Name", captured.Query["fields"][0])
	assert.Equal(t, "Linden", record.Name)
	assert.Equal(t, 7, record.ID)
}

func TestCreate_SingleRecordBecomesCapitalizedArray(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `[{"Id": 42}]`)
	c.RegisterTable("treeInfo", "tbl123")

	created, err := CreateOne(context.Background(), c, "treeInfo", tree{Name: "Oak", Species: "Quercus robur"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)

	var sent []map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &sent))
	require.Len(t, sent, 1)
	assert.Equal(t, "Oak", sent[0]["Name"])
	assert.Equal(t, "Quercus robur", sent[0]["Species"])
	_, hasLower := sent[0]["name"]
	assert.False(t, hasLower)

	require.NotNil(t, created)
	assert.Equal(t, 42, created.ID)
}

func TestCreateOne_EmptyResponse(t *testing.T) {
	c, _ := newTestClient(t, http.StatusOK, `[]`)

	created, err := CreateOne(context.Background(), c, "tbl", tree{Name: "Oak"})
	require.NoError(t, err)
	assert.Nil(t, created)
}

func TestUpdate_SendsPatchArray(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `[{"Id": 7, "Name": "Oak"}]`)

	updated, err := UpdateOne(context.Background(), c, "tbl", tree{ID: 7, Name: "Oak"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, captured.Method)
	var sent []map[string]any
	require.NoError(t, json.Unmarshal(captured.Body, &sent))
	require.Len(t, sent, 1)
	assert.Equal(t, float64(7), sent[0]["Id"])
	require.NotNil(t, updated)
	assert.Equal(t, "Oak", updated.Name)
}

func TestNormalizeRecordIDs(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []RecordID
	}{
		{"single string id", "5", []RecordID{{ID: "5"}}},
		{"single int id", 5, []RecordID{{ID: 5}}},
		{"string slice", []string{"5", "6"}, []RecordID{{ID: "5"}, {ID: "6"}}},
		{"already wrapped", []RecordID{{ID: "5"}}, []RecordID{{ID: "5"}}},
		{"object slice", []map[string]any{{"id": "5"}}, []RecordID{{ID: "5"}}},
		{"mixed any slice", []any{"5", map[string]any{"Id": 6}}, []RecordID{{ID: "5"}, {ID: 6}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeRecordIDs(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeRecordIDs_Invalid(t *testing.T) {
	_, err := NormalizeRecordIDs(nil)
	assert.Error(t, err)
	_, err = NormalizeRecordIDs([]map[string]any{{"name": "no id"}})
	assert.Error(t, err)
}

func TestDelete_NormalizesWirePayload(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `[]`)
	c.RegisterTable("location", "tbl456")

	err := c.Delete(context.Background(), "location", []string{"5", "6"})
	require.NoError(t, err)

	assert.Equal(t, http.MethodDelete, captured.Method)
	assert.Equal(t, "/api/v2/tables/tbl456/records", captured.Path)
	assert.JSONEq(t, `[{"id":"5"},{"id":"6"}]`, string(captured.Body))
}

func TestDelete_SingleID(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `[]`)

	require.NoError(t, c.Delete(context.Background(), "tbl", "5"))
	assert.JSONEq(t, `[{"id":"5"}]`, string(captured.Body))
}

func TestCount(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `{"count": 12}`)
	c.RegisterTable("treeInfo", "tbl123")

	n, err := c.Count(context.Background(), "treeInfo", Query{Where: "(health_status,eq,healthy)"})
	require.NoError(t, err)

	assert.Equal(t, "/api/v2/tables/tbl123/records/count", captured.Path)
	assert.Equal(t, "(Health_status,eq,healthy)", captured.Query["where"][0])
	assert.Equal(t, 12, n)
}

func TestLink_PostsNormalizedIDs(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `true`)
	c.RegisterTable("Planted_Trees", "tbl789")

	err := c.Link(context.Background(), "Planted_Trees", "lnk1", "10", "3")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, "/api/v2/tables/tbl789/links/lnk1/records/10", captured.Path)
	assert.JSONEq(t, `[{"id":"3"}]`, string(captured.Body))
}

func TestUnlink_UsesDelete(t *testing.T) {
	c, captured := newTestClient(t, http.StatusOK, `true`)

	err := c.Unlink(context.Background(), "tbl", "lnk1", "10", []string{"3"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, captured.Method)
	assert.JSONEq(t, `[{"id":"3"}]`, string(captured.Body))
}

func TestAPIError_SurfacesStatusAndMessage(t *testing.T) {
	c, _ := newTestClient(t, http.StatusNotFound, `{"message": "Record not found"}`)

	_, err := Get[tree](context.Background(), c, "tbl", "999")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Record not found", apiErr.Message)
}

func TestRequestCarriesAPIKeyHeader(t *testing.T) {
	var gotToken string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("xc-token")
		_, _ = w.Write([]byte(`{"list": [], "pageInfo": {}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-key")
	_, err := List[tree](context.Background(), c, "tbl", Query{})
	require.NoError(t, err)
	assert.Equal(t, "secret-key", gotToken)
}
