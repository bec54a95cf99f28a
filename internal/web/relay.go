package web

import (
	"net/http"
)

// CookieRelay carries the browser's backend session cookie on outgoing
// backend calls and hands any Set-Cookie from the backend back to the browser.
type CookieRelay struct {
	Base       http.RoundTripper
	CookieName string
	Incoming   *http.Request
	Outgoing   http.ResponseWriter
}

func (c *CookieRelay) RoundTrip(req *http.Request) (*http.Response, error) {
	base := c.Base
	if base == nil {
		base = http.DefaultTransport
	}

	out := req.Clone(req.Context())
	if c.Incoming != nil {
		if cookie, err := c.Incoming.Cookie(c.CookieName); err == nil && cookie.Value != "" {
			out.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
		}
	}

	resp, err := base.RoundTrip(out)
	if err != nil {
		return nil, err
	}

	if c.Outgoing != nil {
		for _, cookie := range resp.Cookies() {
			if cookie.Name != c.CookieName {
				continue
			}
			http.SetCookie(c.Outgoing, cookie)
			// later calls in this request use the new session
			if c.Incoming != nil {
				c.replaceIncoming(cookie)
			}
		}
	}

	return resp, nil
}

func (c *CookieRelay) replaceIncoming(cookie *http.Cookie) {
	cookies := c.Incoming.Cookies()
	c.Incoming.Header.Del("Cookie")
	for _, existing := range cookies {
		if existing.Name == cookie.Name {
			continue
		}
		c.Incoming.AddCookie(existing)
	}
	if cookie.MaxAge >= 0 && cookie.Value != "" {
		c.Incoming.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	}
}
