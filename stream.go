package synthex

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/go-openapi/runtime"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// maxEventSize limits the size of a single event line to prevent memory
// exhaustion from a server that never sends a newline.
const maxEventSize = 10 * 1024 * 1024 // 10MB

// dataPrefix starts every event line. Other lines, blank keep-alives
// included, carry nothing.
const dataPrefix = "data: "

// Stream is an open job stream yielding one [Batch] per event.
//
// Use [JobsService.Stream] to open one, then iterate:
//
//	stream, err := client.Jobs.Stream(ctx, req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer stream.Close()
//
//	for stream.Next() {
//	    fmt.Println(len(stream.Batch()), "records")
//	}
//	if err := stream.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// The stream ends when the server closes the connection.
type Stream struct {
	resp     *http.Response
	reader   *bufio.Reader
	endpoint string
	current  Batch
	err      error
	closed   atomic.Bool
	cancel   context.CancelFunc
}

func newStream(resp *http.Response, endpoint string, cancel context.CancelFunc) *Stream {
	return &Stream{
		resp:     resp,
		reader:   bufio.NewReader(resp.Body),
		endpoint: endpoint,
		cancel:   cancel,
	}
}

// Next advances to the next batch. It blocks until a batch arrives, the
// server closes the connection, or an error occurs. Call [Stream.Err] to
// tell the last two apart.
func (s *Stream) Next() bool {
	if s.closed.Load() || s.err != nil {
		return false
	}

	batch, err := s.readBatch()
	if err != nil {
		if err != io.EOF {
			s.err = err
		}
		return false
	}

	s.current = batch
	return true
}

// Batch returns the current batch. Call this after [Stream.Next] returns true.
func (s *Stream) Batch() Batch {
	return s.current
}

// Err returns the error that stopped the stream, or nil.
func (s *Stream) Err() error {
	return s.err
}

// Close releases the connection. It is safe to call multiple times and
// from another goroutine, which is how a blocked [Stream.Next] is cancelled.
func (s *Stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	var err error
	if s.resp != nil && s.resp.Body != nil {
		err = s.resp.Body.Close()
	}
	if s.cancel != nil {
		s.cancel()
	}
	return err
}

// readBatch reads lines until one carries an event and decodes it.
func (s *Stream) readBatch() (Batch, error) {
	for {
		line, err := s.readLine()
		if err != nil && (err != io.EOF || line == "") {
			return nil, err
		}

		if payload, ok := strings.CutPrefix(line, dataPrefix); ok {
			payload = strings.TrimSpace(payload)
			if !strings.HasPrefix(payload, "[") {
				return nil, &DecodeError{Endpoint: s.endpoint, Reason: "event is not a JSON array of records"}
			}
			var batch Batch
			if derr := json.Unmarshal([]byte(payload), &batch); derr != nil {
				return nil, &DecodeError{Endpoint: s.endpoint, Reason: "event is not a JSON array of records", Cause: derr}
			}
			return batch, nil
		}

		if err == io.EOF {
			return nil, err
		}
	}
}

// readLine returns the next line without its terminator. The final line
// of a body with no trailing newline is returned together with io.EOF.
func (s *Stream) readLine() (string, error) {
	var b strings.Builder
	for {
		chunk, isPrefix, err := s.reader.ReadLine()
		if err != nil {
			return b.String(), err
		}
		if b.Len()+len(chunk) > maxEventSize {
			return "", fmt.Errorf("event exceeds maximum size of %d bytes", maxEventSize)
		}
		b.Write(chunk)
		if !isPrefix {
			return b.String(), nil
		}
	}
}

// Stream validates req and opens the job creation stream.
//
// Validation failures are returned before any connection is made, and an
// error status from the server is mapped before any body is read. The
// client's stream timeout, when set, bounds the whole stream; otherwise
// use a context deadline or [Stream.Close] to cancel.
func (s *JobsService) Stream(ctx context.Context, req *GenerateDataRequest) (*Stream, error) {
	if _, err := req.validate(); err != nil {
		s.client.logger.Debug("job request rejected", zap.Error(err))
		return nil, err
	}
	return s.open(ctx, req)
}

func (s *JobsService) open(ctx context.Context, req *GenerateDataRequest) (*Stream, error) {
	c := s.client

	var cancel context.CancelFunc
	if c.streamTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.streamTimeout)
	}

	resp, err := c.requestStream(ctx, http.MethodPost, createJobEndpoint, req.jobRequest())
	if err != nil {
		if cancel != nil {
			cancel()
		}
		return nil, err
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if mt, _, perr := runtime.ContentType(resp.Header); perr != nil || mt != "text/event-stream" {
			c.logger.Warn("unexpected stream content type", zap.String("content_type", ct))
		}
	}
	return newStream(resp, createJobEndpoint, cancel), nil
}

// closeStream closes s and folds its error into err.
func closeStream(s *Stream, err *error) {
	*err = multierr.Append(*err, s.Close())
}
