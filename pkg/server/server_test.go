package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/elvisburrniku/OrderTable-sub008/pkg/floorplan"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layout"
	"github.com/elvisburrniku/OrderTable-sub008/pkg/layoutstore"
)

func testHandler(t *testing.T) (http.Handler, *layoutstore.MemoryStore) {
	t.Helper()
	store := layoutstore.NewMemoryStore()
	srv := New(":0", store, log.New(io.Discard))
	return srv.Handler(), store
}

func sampleBody(t *testing.T, room string) []byte {
	t.Helper()
	l := layout.Serialize(room, []floorplan.Item{
		{ID: "t1", Type: floorplan.ItemTable, Shape: floorplan.ShapeRectangle,
			X: 100, Y: 200, Width: 120, Height: 80,
			Color: "#8B4513", Label: "Table 1", Capacity: 4, TableNumber: "1"},
	})
	data, err := layout.Marshal(l)
	if err != nil {
		t.Fatal(err)
	}
	return data
}

func doRequest(h http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("error body is not JSON: %v", err)
	}
	return body.Error.Code
}

func TestHealthz(t *testing.T) {
	h, _ := testHandler(t)
	w := doRequest(h, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestPutThenGetLayout(t *testing.T) {
	h, _ := testHandler(t)

	w := doRequest(h, http.MethodPut, "/api/rooms/main/layout", sampleBody(t, "main"))
	if w.Code != http.StatusNoContent {
		t.Fatalf("PUT status = %d, want 204: %s", w.Code, w.Body.String())
	}

	w = doRequest(h, http.MethodGet, "/api/rooms/main/layout", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want 200", w.Code)
	}

	l, err := layout.Read(w.Body)
	if err != nil {
		t.Fatal(err)
	}
	if l.Room != "main" || len(l.Positions) != 1 {
		t.Errorf("GET returned room %q with %d positions, want main with 1", l.Room, len(l.Positions))
	}
}

func TestPutUnchangedLayoutIsStable(t *testing.T) {
	h, _ := testHandler(t)
	body := sampleBody(t, "main")

	for range 2 {
		if w := doRequest(h, http.MethodPut, "/api/rooms/main/layout", body); w.Code != http.StatusNoContent {
			t.Fatalf("PUT status = %d, want 204", w.Code)
		}
	}

	first := doRequest(h, http.MethodGet, "/api/rooms/main/layout", nil).Body.Bytes()
	second := doRequest(h, http.MethodGet, "/api/rooms/main/layout", nil).Body.Bytes()
	if !bytes.Equal(first, second) {
		t.Error("saving the same layout twice produced different stored bytes")
	}
}

func TestGetMissingLayout(t *testing.T) {
	h, _ := testHandler(t)

	w := doRequest(h, http.MethodGet, "/api/rooms/ghost/layout", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if code := errorCode(t, w); code != "ROOM_NOT_FOUND" {
		t.Errorf("error code = %q, want ROOM_NOT_FOUND", code)
	}
}

func TestPutRejectsRoomMismatch(t *testing.T) {
	h, _ := testHandler(t)

	w := doRequest(h, http.MethodPut, "/api/rooms/main/layout", sampleBody(t, "patio"))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if code := errorCode(t, w); code != "INVALID_LAYOUT" {
		t.Errorf("error code = %q, want INVALID_LAYOUT", code)
	}
}

func TestPutAdoptsURLRoomWhenBodyOmitsIt(t *testing.T) {
	h, store := testHandler(t)

	w := doRequest(h, http.MethodPut, "/api/rooms/main/layout",
		[]byte(`{"positions":{}}`))
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204: %s", w.Code, w.Body.String())
	}

	if _, err := store.Get(t.Context(), "main"); err != nil {
		t.Errorf("layout not stored under the URL room: %v", err)
	}
}

func TestPutRejectsMalformedBody(t *testing.T) {
	h, _ := testHandler(t)

	w := doRequest(h, http.MethodPut, "/api/rooms/main/layout", []byte("{broken"))
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestInvalidRoomIdentifier(t *testing.T) {
	h, _ := testHandler(t)

	// Traversal sequences are caught by room validation before any storage
	// access. The path segment form that survives routing is "..".
	w := doRequest(h, http.MethodGet, "/api/rooms/%2e%2e/layout", nil)
	if w.Code != http.StatusBadRequest && w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want a rejection", w.Code)
	}
}

func TestDeleteLayout(t *testing.T) {
	h, _ := testHandler(t)
	doRequest(h, http.MethodPut, "/api/rooms/main/layout", sampleBody(t, "main"))

	w := doRequest(h, http.MethodDelete, "/api/rooms/main/layout", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want 204", w.Code)
	}

	w = doRequest(h, http.MethodGet, "/api/rooms/main/layout", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("GET after delete status = %d, want 404", w.Code)
	}
}

func TestListRooms(t *testing.T) {
	h, _ := testHandler(t)

	w := doRequest(h, http.MethodGet, "/api/rooms", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"rooms":[]`) {
		t.Errorf("empty store body = %s, want empty rooms array", w.Body.String())
	}

	doRequest(h, http.MethodPut, "/api/rooms/patio/layout", sampleBody(t, "patio"))
	doRequest(h, http.MethodPut, "/api/rooms/bar/layout", sampleBody(t, "bar"))

	w = doRequest(h, http.MethodGet, "/api/rooms", nil)
	var out struct {
		Rooms []string `json:"rooms"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out.Rooms) != 2 || out.Rooms[0] != "bar" || out.Rooms[1] != "patio" {
		t.Errorf("rooms = %v, want sorted [bar patio]", out.Rooms)
	}
}

func TestPutOversizedBody(t *testing.T) {
	h, _ := testHandler(t)

	big := append([]byte(`{"room":"main","positions":{"x":{"label":"`),
		bytes.Repeat([]byte("a"), maxLayoutBytes)...)
	big = append(big, []byte(`"}}}`)...)

	w := doRequest(h, http.MethodPut, "/api/rooms/main/layout", big)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for an oversized body", w.Code)
	}
}
