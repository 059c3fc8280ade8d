package resp_test

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/http/template"
	"github.com/xy-planning-network/waypoint/logger"
)

const htmlMediaType = "text/html; charset=utf-8"

func newTestResponder(t *testing.T, files fstest.MapFS, opts ...resp.ResponderOptFn) (*resp.Responder, *bytes.Buffer) {
	t.Helper()

	b := new(bytes.Buffer)
	l := logger.New(slog.New(slog.NewJSONHandler(b, &slog.HandlerOptions{Level: slog.LevelDebug})))
	p := template.NewParser([]fs.FS{files})

	args := append([]resp.ResponderOptFn{
		resp.WithLogger(l),
		resp.WithParser(p),
		resp.WithErrTemplate(template.ErrorTmpl),
	}, opts...)

	return resp.NewResponder(args...), b
}

func TestResponderDo(t *testing.T) {
	t.Run("Cancelled", func(t *testing.T) {
		// Arrange
		r := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		ctx, cancel := context.WithCancel(r.Context())
		r = r.Clone(ctx)

		w := httptest.NewRecorder()
		w.WriteHeader(http.StatusPaymentRequired)

		cancel()

		d, _ := newTestResponder(t, fstest.MapFS{})

		// Act
		err := d.Text(w, r, resp.Code(http.StatusTeapot), resp.Data("nope"))

		// Assert
		require.ErrorIs(t, err, resp.ErrDone)
		require.Equal(t, http.StatusPaymentRequired, w.Code)
	})

	t.Run("Bad-Code", func(t *testing.T) {
		d, _ := newTestResponder(t, fstest.MapFS{})
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := d.Text(w, r, resp.Code(42), resp.Data("nope"))

		require.ErrorIs(t, err, resp.ErrBadConfig)
	})
}

func TestResponderText(t *testing.T) {
	tcs := []struct {
		name         string
		opts         []resp.Fn
		expectedCode int
		expectedCT   string
		expectedBody string
		expectedErr  error
	}{
		{"No-Data", nil, http.StatusOK, "", "", resp.ErrMissingData},
		{"String", []resp.Fn{resp.Data("Home Page")}, http.StatusOK, htmlMediaType, "Home Page", nil},
		{"Stringer", []resp.Fn{resp.Data(errors.New("such text"))}, http.StatusOK, htmlMediaType, "such text", nil},
		{
			"Code-And-Type",
			[]resp.Fn{resp.Data("accepted"), resp.Code(http.StatusAccepted), resp.ContentType("text/plain")},
			http.StatusAccepted,
			"text/plain",
			"accepted",
			nil,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d, _ := newTestResponder(t, fstest.MapFS{})
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			// Act
			err := d.Text(w, r, tc.opts...)

			// Assert
			require.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedErr != nil {
				return
			}

			require.Equal(t, tc.expectedCode, w.Code)
			require.Equal(t, tc.expectedCT, w.Header().Get("Content-Type"))
			require.Equal(t, tc.expectedBody, w.Body.String())
		})
	}
}

func TestResponderHtml(t *testing.T) {
	files := fstest.MapFS{
		"page.tmpl":   &fstest.MapFile{Data: []byte(`<p>{{ . }}</p>{{ template "footer" }}`)},
		"footer.tmpl": &fstest.MapFile{Data: []byte(`{{ define "footer" }}<footer></footer>{{ end }}`)},
		"broken.tmpl": &fstest.MapFile{Data: []byte(`{{ template "nope" }}`)},
	}

	tcs := []struct {
		name         string
		opts         []resp.Fn
		expectedBody string
		expectedErr  error
	}{
		{"No-Tmpls", nil, "", resp.ErrMissingData},
		{"Missing-Tmpl", []resp.Fn{resp.Tmpls("nope.tmpl")}, "", template.ErrNotExist},
		{
			"Data",
			[]resp.Fn{resp.Tmpls("page.tmpl", "footer.tmpl"), resp.Data("sup")},
			"<p>sup</p><footer></footer>",
			nil,
		},
		{
			"Escaped",
			[]resp.Fn{resp.Tmpls("page.tmpl", "footer.tmpl"), resp.Data("<script>")},
			"<p>&lt;script&gt;</p><footer></footer>",
			nil,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d, _ := newTestResponder(t, files)
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			// Act
			err := d.Html(w, r, tc.opts...)

			// Assert
			require.ErrorIs(t, err, tc.expectedErr)
			if tc.expectedErr != nil {
				return
			}

			require.Equal(t, http.StatusOK, w.Code)
			require.Equal(t, htmlMediaType, w.Header().Get("Content-Type"))
			require.Equal(t, tc.expectedBody, w.Body.String())
		})
	}

	t.Run("No-Parser", func(t *testing.T) {
		d := resp.NewResponder()
		err := d.Html(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil), resp.Tmpls("page.tmpl"))
		require.ErrorIs(t, err, resp.ErrBadConfig)
	})

	t.Run("Execute-Error-Writes-Nothing", func(t *testing.T) {
		d, _ := newTestResponder(t, files)
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		err := d.Html(w, r, resp.Tmpls("broken.tmpl"), resp.Data(map[string]any{}))

		require.NotNil(t, err)
		require.Zero(t, w.Body.Len())
	})
}

func TestResponderErr(t *testing.T) {
	tcs := []struct {
		name         string
		err          error
		opts         []resp.Fn
		expectedCode int
		expectedBody []string
		expectedLog  string
	}{
		{
			"Default-500",
			errors.New("kaboom"),
			nil,
			http.StatusInternalServerError,
			[]string{"<title>500 Internal Server Error</title>", "<h1>Internal Server Error</h1>"},
			`"level":"ERROR"`,
		},
		{
			"Not-Found",
			resp.ErrNotFound,
			[]resp.Fn{resp.Code(http.StatusNotFound)},
			http.StatusNotFound,
			[]string{
				"<title>404 Not Found</title>",
				"<h1>Not Found</h1>",
				"<p>The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.</p>",
			},
			`"level":"DEBUG"`,
		},
		{
			"Method-Not-Allowed",
			resp.ErrMethodNotAllowed,
			[]resp.Fn{resp.Code(http.StatusMethodNotAllowed)},
			http.StatusMethodNotAllowed,
			[]string{"<title>405 Method Not Allowed</title>", "The method is not allowed for the requested URL."},
			`"level":"DEBUG"`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			d, logs := newTestResponder(t, fstest.MapFS{})
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/nope", nil)

			// Act
			d.Err(w, r, tc.err, tc.opts...)

			// Assert
			require.Equal(t, tc.expectedCode, w.Code)
			require.Equal(t, htmlMediaType, w.Header().Get("Content-Type"))
			for _, s := range tc.expectedBody {
				require.Contains(t, w.Body.String(), s)
			}
			require.Contains(t, logs.String(), tc.expectedLog)
		})
	}

	t.Run("No-Template", func(t *testing.T) {
		d := resp.NewResponder()
		w := httptest.NewRecorder()

		d.Err(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("kaboom"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "Internal Server Error\n", w.Body.String())
	})
}

func TestResponderRootUrl(t *testing.T) {
	files := fstest.MapFS{"root.tmpl": &fstest.MapFile{Data: []byte(`{{ rootUrl }}`)}}
	d, _ := newTestResponder(t, files, resp.WithRootUrl("https://example.com/"))
	w := httptest.NewRecorder()

	err := d.Html(w, httptest.NewRequest(http.MethodGet, "/", nil), resp.Tmpls("root.tmpl"))

	require.Nil(t, err)
	require.Equal(t, "https://example.com/", w.Body.String())
}
