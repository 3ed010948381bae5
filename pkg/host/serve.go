package host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
)

// MaxLineSize bounds a single request line. Documents travel inside requests.
const MaxLineSize = 64 << 20

// Serve reads one JSON request per line from r and writes one JSON response
// per line to w. Requests are handled one at a time, in order.
// It returns nil when r is exhausted or ctx is done.
func Serve(ctx context.Context, d *Dispatcher, r io.Reader, w io.Writer, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var resp Response
		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			resp = Response{Error: &Error{Kind: KindParse, Message: err.Error()}}
			logger.Warn("malformed host request", "error", err)
		} else {
			resp = d.Handle(ctx, req)
			logger.Debug("host call", "method", req.Method, "failed", resp.Error != nil)
		}

		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}
	return nil
}
