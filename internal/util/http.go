// Copyright (c) 2026, R.I. Pienaar and the Choria Project contributors
//
// SPDX-License-Identifier: Apache-2.0

package util

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// RedactUrlCredentials returns the URL as a string with any password replaced
func RedactUrlCredentials(u *url.URL) string {
	if u == nil {
		return ""
	}

	return u.Redacted()
}

// HttpGetResponse performs a GET request for uri, a timeout of 0 leaves timeouts to the
// transport. The caller must close the body and call the returned cancel function.
func HttpGetResponse(ctx context.Context, client *http.Client, uri string, timeout time.Duration, hdr http.Header) (*http.Response, context.CancelFunc, error) {
	if client == nil {
		client = http.DefaultClient
	}

	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	for k, vals := range hdr {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		cancel()
		return nil, nil, err
	}

	return resp, cancel, nil
}
