package mock

import "net/http/httptest"

// HTTPTestServer serves Service over httptest
type HTTPTestServer struct {
	*Service
	Server *httptest.Server
	URL    string
}

// NewHTTPTestServer starts a mock service
func NewHTTPTestServer() (*HTTPTestServer, error) {
	service, err := NewService()
	if err != nil {
		return nil, err
	}
	ret := &HTTPTestServer{Service: service}
	ret.Server = httptest.NewServer(service.Handler())
	ret.URL = ret.Server.URL
	service.Issuer = ret.URL
	return ret, nil
}

func (s *HTTPTestServer) Close() {
	if s.Server != nil {
		s.Server.Close()
	}
	s.Server = nil
}
