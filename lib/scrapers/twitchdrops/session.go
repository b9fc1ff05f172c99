package twitchdrops

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"
)

// ErrMissingSession means neither a session state file nor the base64
// secret was available. This is the one startup error that must abort
// the run before any page activity happens.
var ErrMissingSession = errors.New("missing twitch session state: provide a state file or TWITCH_STATE_B64")

type SessionCookie struct {
	Name     string  `json:"name"`
	Value    string  `json:"value"`
	Domain   string  `json:"domain"`
	Path     string  `json:"path"`
	Expires  float64 `json:"expires"`
	HttpOnly bool    `json:"httpOnly"`
	Secure   bool    `json:"secure"`
}

// SessionState mirrors the browser storage-state document exported when
// recording a logged-in twitch session. Only the cookies matter here.
type SessionState struct {
	Cookies []SessionCookie `json:"cookies"`
}

// LoadSessionState reads the session state from `path` when the file
// exists, otherwise reconstructs it from the base64 blob. Returns
// ErrMissingSession when neither source is available.
func LoadSessionState(path string, b64 string) (SessionState, error) {
	var raw []byte

	if path != "" {
		contents, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return SessionState{}, err
		}
		raw = contents
	}
	if len(raw) == 0 && b64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(b64)
		if err != nil {
			return SessionState{}, fmt.Errorf("failed to decode session state secret: %w", err)
		}
		raw = decoded
	}
	if len(raw) == 0 {
		return SessionState{}, ErrMissingSession
	}

	var state SessionState
	err := json.Unmarshal(raw, &state)
	if err != nil {
		return SessionState{}, fmt.Errorf("failed to parse session state: %w", err)
	}
	return state, nil
}

// HttpCookies converts the stored cookies into the form a cookie jar
// accepts. A zero/negative expiry means a session cookie.
func (s SessionState) HttpCookies() []*http.Cookie {
	cookies := make([]*http.Cookie, len(s.Cookies))
	for i, c := range s.Cookies {
		cookie := &http.Cookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			HttpOnly: c.HttpOnly,
			Secure:   c.Secure,
		}
		if c.Expires > 0 {
			cookie.Expires = time.Unix(int64(c.Expires), 0)
		}
		cookies[i] = cookie
	}
	return cookies
}
