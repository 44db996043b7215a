package handlers

import (
	"bytes"
	"crypto/sha1"
	"embed"
	"html/template"
	"net/http"
	"net/url"
	"path"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
	"golang.org/x/crypto/pbkdf2"

	"github.com/spencer-p/daylightchart/pkg/data"
	"github.com/spencer-p/daylightchart/pkg/report"
	"github.com/spencer-p/daylightchart/pkg/riseset"
	"github.com/spencer-p/daylightchart/pkg/visualize"
)

//go:embed templates
var content embed.FS

const (
	sessionName      = "daylight-chart"
	sessionLastQuery = "last-query"
	// See https://developer.chrome.com/blog/cookie-max-age-expires.
	defaultMaxAge = 60 * 60 * 24 * 400 // 400 days in seconds.

	defaultKey = "deadbeef"
)

func newCookieStore(sessionKey, encryptionKey string) *sessions.CookieStore {
	if sessionKey == "" {
		sessionKey = defaultKey
	}
	store := &sessions.CookieStore{
		Codecs: securecookie.CodecsFromPairs(
			[]byte(sessionKey),
			deriveEncryptionKey(encryptionKey),
		),
		Options: &sessions.Options{
			Path:     "/",
			MaxAge:   defaultMaxAge,
			Secure:   true,
			HttpOnly: true,
		},
	}
	store.MaxAge(defaultMaxAge)
	return store
}

// deriveEncryptionKey stretches a password into an AES-256 key.
func deriveEncryptionKey(password string) []byte {
	if password == "" {
		password = defaultKey
	}
	return pbkdf2.Key([]byte(password), []byte{}, 4096, 32, sha1.New)
}

// session returns r's session. A cookie that no longer decodes yields a
// fresh session.
func (s *Server) session(r *http.Request) *sessions.Session {
	session, err := s.sessions.Get(r, sessionName)
	if err != nil {
		s.logger.Debug("Discarding unreadable session", zap.Error(err))
	}
	return session
}

func lastQuery(session *sessions.Session) (url.Values, bool) {
	raw, ok := session.Values[sessionLastQuery].(string)
	if !ok {
		return nil, false
	}
	v, err := url.ParseQuery(raw)
	if err != nil {
		return nil, false
	}
	return v, true
}

func rememberQuery(session *sessions.Session, q chartQuery) {
	session.Values[sessionLastQuery] = q.values().Encode()
}

type TemplateInput struct {
	Title     string
	Query     url.Values
	Chart     template.HTML
	Summary   report.Summary
	Bands     []string
	Horizons  []riseset.Horizon
	Locations []data.Location
	Prefix    string
}

// makeIndexHandler serves a chart page fully rendered on the server.
func (s *Server) makeIndexHandler() http.HandlerFunc {
	indexTemplate := template.Must(template.ParseFS(content, "templates/index.template.html"))

	return func(w http.ResponseWriter, r *http.Request) {
		q, err := s.query(w, r)
		if err != nil {
			s.fail(w, err)
			return
		}
		c, err := s.compute(q)
		if err != nil {
			s.fail(w, err)
			return
		}

		var svg bytes.Buffer
		if _, err := visualize.NewChart(c).Encode(&svg); err != nil {
			s.fail(w, err)
			return
		}

		tinput := TemplateInput{
			Title:    c.Title(),
			Query:    q.values(),
			Chart:    template.HTML(svg.String()),
			Summary:  report.Summarize(c),
			Horizons: riseset.Horizons,
			Prefix:   s.prefix,
		}
		for _, b := range c.Bands {
			tinput.Bands = append(tinput.Bands, b.Name())
		}
		if s.locations != nil {
			// A failed lookup only hides the list.
			if locs, err := s.locations.List(); err != nil {
				s.logger.Warn("Failed to list locations", zap.Error(err))
			} else {
				tinput.Locations = locs
			}
		}

		w.Header().Add("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		if err := indexTemplate.Execute(w, tinput); err != nil {
			s.logger.Error("Failed to execute template", zap.Error(err))
		}
	}
}

func pathJoinPreservePrefix(prefix string, suffix string) string {
	trimmedPrefix := path.Join(prefix, "")
	result := path.Join(prefix, suffix)
	if result == trimmedPrefix {
		return prefix
	}
	return result
}
