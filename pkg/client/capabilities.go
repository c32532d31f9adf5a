package client

import (
	"context"
	"io"
	"net/http"
	"net/url"

	"github.com/bardasz/etp/pkg/etperr"
	"github.com/bardasz/etp/pkg/messages"
	"github.com/bardasz/etp/pkg/protocol"
	"github.com/bardasz/etp/pkg/schema"
)

const capabilitiesPath = "/.well-known/etp-server-capabilities"

// maxCapabilitiesSize bounds the capabilities document.
const maxCapabilitiesSize = 1 << 20

// ServerCapabilitiesURL maps an ETP websocket URL to the server
// capabilities document URL on the same host.
func ServerCapabilitiesURL(etpURL string) (string, error) {
	u, err := url.Parse(etpURL)
	if err != nil {
		return "", etperr.New("E400").WithDetail(etpURL).Wrap(err)
	}
	switch u.Scheme {
	case "ws", "http":
		u.Scheme = "http"
	case "wss", "https":
		u.Scheme = "https"
	default:
		return "", etperr.New("E400").WithDetailf("%s: unsupported scheme %q", etpURL, u.Scheme)
	}
	if u.Host == "" {
		return "", etperr.New("E400").WithDetailf("%s: missing host", etpURL)
	}
	u.User = nil
	u.Path = capabilitiesPath
	u.RawQuery = url.Values{"GetVersion": {protocol.SubProtocol}}.Encode()
	u.Fragment = ""
	return u.String(), nil
}

// GetServerCapabilities fetches and decodes the server capabilities
// document. A nil httpClient uses http.DefaultClient.
func GetServerCapabilities(ctx context.Context, httpClient *http.Client, etpURL string) (*messages.ServerCapabilities, error) {
	capURL, err := ServerCapabilitiesURL(etpURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, capURL, nil)
	if err != nil {
		return nil, etperr.New("E400").WithDetail(capURL).Wrap(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, etperr.New("E200").WithDetailf("GET %s", capURL).Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, etperr.New("E200").WithDetailf("GET %s: %s", capURL, resp.Status)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCapabilitiesSize))
	if err != nil {
		return nil, etperr.New("E200").WithDetailf("GET %s", capURL).Wrap(err)
	}

	native, err := schema.Default().NativeFromJSON(schema.TypeServerCapabilities, body)
	if err != nil {
		return nil, err
	}
	return messages.ServerCapabilitiesFromNative(native)
}
