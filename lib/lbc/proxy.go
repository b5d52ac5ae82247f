package lbc

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Proxy is one upstream proxy the session can route requests through.
type Proxy struct {
	Host     string
	Port     int
	Username string
	Password string
}

// URL renders the proxy in the form resty's SetProxy accepts.
func (p Proxy) URL() string {
	u := &url.URL{
		Scheme: "http",
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
	}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u.String()
}

// ParseProxy parses a proxy spec in one of the usual pool-file formats:
//
//	host:port
//	host:port:username:password
//	username:password@host:port
func ParseProxy(spec string) (Proxy, error) {
	spec = strings.TrimSpace(spec)

	if auth, hostport, found := strings.Cut(spec, "@"); found {
		user, pass, ok := strings.Cut(auth, ":")
		if !ok {
			return Proxy{}, invalidValue("proxy spec %q: missing password", spec)
		}
		proxy, err := parseHostPort(hostport)
		if err != nil {
			return Proxy{}, err
		}
		proxy.Username = user
		proxy.Password = pass
		return proxy, nil
	}

	parts := strings.Split(spec, ":")
	switch len(parts) {
	case 2:
		return parseHostPort(spec)
	case 4:
		proxy, err := parseHostPort(parts[0] + ":" + parts[1])
		if err != nil {
			return Proxy{}, err
		}
		proxy.Username = parts[2]
		proxy.Password = parts[3]
		return proxy, nil
	}
	return Proxy{}, invalidValue("proxy spec %q: want host:port, host:port:user:pass or user:pass@host:port", spec)
}

func parseHostPort(hostport string) (Proxy, error) {
	host, portStr, found := strings.Cut(hostport, ":")
	if !found || host == "" {
		return Proxy{}, invalidValue("proxy spec %q: missing host", hostport)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return Proxy{}, invalidValue("proxy spec %q: bad port", hostport)
	}
	return Proxy{Host: host, Port: port}, nil
}
