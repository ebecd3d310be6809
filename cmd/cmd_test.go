package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/clarinetlint/analysis"
	"github.com/jsphweid/clarinetlint/config"
	"github.com/jsphweid/clarinetlint/model"
	"github.com/jsphweid/clarinetlint/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
	"go.uber.org/zap"
)

func smfBytes(t *testing.T, keys ...uint8) []byte {
	t.Helper()
	var tr smf.Track
	for _, k := range keys {
		tr.Add(0, midi.NoteOn(0, k, 100))
		tr.Add(240, midi.NoteOff(0, k))
	}
	tr.Close(0)

	s := smf.New()
	require.NoError(t, s.Add(tr))
	var buf bytes.Buffer
	_, err := s.WriteTo(&buf)
	require.NoError(t, err)
	return buf.Bytes()
}

func TestAnnotateCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"annotate", "--config", "", "B4", "C#5", "C5", "E-5", "B4", "C5", "E-5", "F5"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "  6  E-5   X\n")
	assert.Contains(t, out.String(), "run 0-6 lane A infeasible\n")
}

func newTestRouter() (http.Handler, *store.Memory) {
	st := store.NewMemory()
	return NewRouter(config.Default(), st, zap.NewNop()), st
}

func post(t *testing.T, h http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHandleAnnotateSavesReport(t *testing.T) {
	h, st := newTestRouter()

	body, _ := json.Marshal(model.AnnotateRequestBody{Notes: []string{"B4", "C#5", "C5", "E-5"}, Save: true})
	w := post(t, h, "/annotate", body)
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.AnnotateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert := assert.New(t)
	assert.Equal("basic", resp.Variant)
	require.Len(t, resp.Parts, 1)
	var hands []string
	for _, n := range resp.Parts[0].Notes {
		hands = append(hands, n.Hand)
	}
	assert.Equal([]string{"L", "R", "L", "R"}, hands)

	saved, err := st.Get(context.Background(), resp.ID)
	require.NoError(t, err)
	assert.Equal(resp.Parts, saved.Parts)

	req := httptest.NewRequest(http.MethodGet, "/reports/"+resp.ID, nil)
	g := httptest.NewRecorder()
	h.ServeHTTP(g, req)
	assert.Equal(http.StatusOK, g.Code)
}

func TestHandleAnnotateRejectsBadInput(t *testing.T) {
	h, _ := newTestRouter()

	cases := map[string]string{
		"not json":    `{`,
		"no notes":    `{"notes": []}`,
		"bad note":    `{"notes": ["H4"]}`,
		"bad variant": `{"notes": ["B4"], "variant": "saxophone"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := post(t, h, "/annotate", []byte(body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), `"detail"`)
		})
	}
}

func TestHandleGetMissingReport(t *testing.T) {
	h, _ := newTestRouter()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/nope", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleAnnotateMidi(t *testing.T) {
	h, _ := newTestRouter()

	// E3 F#3 F3 G#3 finger as B4 C#5 C5 D#5
	w := post(t, h, "/annotate/midi?variant=extended", smfBytes(t, 52, 54, 53, 56))
	require.Equal(t, http.StatusOK, w.Code)

	var resp model.AnnotateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "extended", resp.Variant)
	require.Len(t, resp.Parts, 1)
	assert.Equal(t, "E3", resp.Parts[0].Notes[0].Name)
	assert.Equal(t, "L", resp.Parts[0].Notes[0].Hand)
	assert.Equal(t, "R", resp.Parts[0].Notes[3].Hand)

	w = post(t, h, "/annotate/midi", []byte("nope"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWatchAnalyzesOnStart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "piece.mid")
	require.NoError(t, os.WriteFile(path, smfBytes(t, 71, 73, 72, 75), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var got []analysis.Result
	err := watch(ctx, path, time.Millisecond, analysis.DefaultOptions(), func(results []analysis.Result) {
		got = results
		cancel()
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []model.Annotation{model.HandLeft, model.HandRight, model.HandLeft, model.HandRight}, got[0].Annotations)
}

func TestWatchReanalyzesAfterChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "piece.mid")
	require.NoError(t, os.WriteFile(path, smfBytes(t, 71, 73, 72, 75), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan []analysis.Result, 16)
	done := make(chan error, 1)
	go func() {
		done <- watch(ctx, path, 20*time.Millisecond, analysis.DefaultOptions(), func(r []analysis.Result) {
			results <- r
		})
	}()

	first := <-results
	require.Len(t, first, 1)
	assert.Equal(t, []model.Annotation{model.HandLeft, model.HandRight, model.HandLeft, model.HandRight}, first[0].Annotations)

	// replace the file the way editors do: write aside, rename over
	tmp := filepath.Join(dir, "piece.tmp")
	require.NoError(t, os.WriteFile(tmp, smfBytes(t, 71, 72, 75), 0644))
	require.NoError(t, os.Rename(tmp, path))

	want := []model.Annotation{model.HandRight, model.HandLeft, model.HandRight}
	timeout := time.After(5 * time.Second)
	for changed := false; !changed; {
		select {
		case r := <-results:
			changed = len(r) == 1 && assert.ObjectsAreEqual(want, r[0].Annotations)
		case <-timeout:
			t.Fatal("no analysis after the file changed")
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestAnnotateSaveNeedsPersistentStore(t *testing.T) {
	t.Cleanup(func() { annotateSave = false })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"annotate", "--config", "", "--save", "B4", "C5"})

	err := rootCmd.Execute()
	assert.ErrorIs(t, err, ErrNoPersistentStore)
	assert.NotContains(t, out.String(), "report ")
}

func TestPrintReportSeparatesParts(t *testing.T) {
	var buf bytes.Buffer
	r := analysis.Result{Part: "a"}
	require.NoError(t, printReport(&buf, []analysis.Result{r, {Part: "b"}}))
	assert.Equal(t, 2, strings.Count(buf.String(), "# "))
}
