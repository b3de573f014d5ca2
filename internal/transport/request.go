package transport

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/agentstation/metricdocs/pkg/errors"
	"github.com/agentstation/metricdocs/pkg/logging"
)

// maxErrorBody caps how much of a failed response ends up in an error.
const maxErrorBody = 512

// DecodeResponse decodes a JSON response into the target structure.
// Non-2xx answers become an APIError carrying the start of the body.
func DecodeResponse(resp *http.Response, target any) error {
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.Warn().Err(err).Msg("Failed to close response body")
		}
	}()

	endpoint := ""
	if resp.Request != nil && resp.Request.URL != nil {
		endpoint = resp.Request.URL.Path
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.WrapTransport(endpoint, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := string(body)
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return errors.NewAPIError(endpoint, resp.StatusCode, msg)
	}

	if err := json.Unmarshal(body, target); err != nil {
		return errors.WrapParse("json", endpoint, err)
	}
	return nil
}
