package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/PaesslerAG/jsonpath"
	"github.com/sirupsen/logrus"
)

// contains http utils to deal with the remote api

// StatusError is returned for any non 2xx response.
type StatusError struct {
	Code   int
	Status string
	URL    string
}

func (e *StatusError) Error() string { return fmt.Sprintf("cannot http %v: %v", e.URL, e.Status) }

// loggingTransport logs every exchange.
type loggingTransport struct {
	base http.RoundTripper
	log  logrus.FieldLogger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.WithError(err).Warnf("%v %v%v", req.Method, req.URL.Host, req.URL.Path)
		return nil, err
	}
	t.log.Debugf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	return resp, nil
}

// newLoggingClient returns an http.Client logging to log. A nil log uses
// logrus' standard logger.
func newLoggingClient(log logrus.FieldLogger) *http.Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	client := new(http.Client)
	client.Transport = &loggingTransport{base: http.DefaultTransport, log: log}
	return client
}

// jwdo performs an HTTP request with an optional JSON body, and unmarshals the
// JSON response into data.
func jwdo(ctx context.Context, client *http.Client, method, addr string, body, data any) error {
	var reqBody io.Reader
	if body != nil {
		content, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(content)
	}
	req, err := http.NewRequestWithContext(ctx, method, addr, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Status: resp.Status, URL: resp.Request.URL.Host + resp.Request.URL.Path}
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return err
	}
	return json.Unmarshal(buf.Bytes(), data)
}

// extract evaluates path on the decoded json jobj and stores the result in data.
func extract(path string, jobj any, data any) error {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// a path with a wildcard returns a list of one answer, keep the answer.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		if _, nested := jlist[0].([]any); nested {
			jval = jlist[0]
		}
	}
	content, err := json.Marshal(jval)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(content, data); err != nil {
		return fmt.Errorf("unexpected value at %q: %w", path, err)
	}
	return nil
}
