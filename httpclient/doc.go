// Package httpclient is the HTTP client shared by the sidecar-backed
// collaborators (whisper, pyannote, punctuation). It resolves paths against
// a base URL, encodes JSON and multipart bodies, retries transient failures
// and reports every failure as an application error naming the sidecar.
//
//	c, err := httpclient.New("pyannote", httpclient.Config{BaseURL: "http://localhost:8388"})
//	var out response
//	err = c.DoJSON(ctx, httpclient.Request{
//	    Method: http.MethodPost,
//	    Path:   "/diarize",
//	    Body:   &httpclient.MultipartBody{Files: []httpclient.FileField{{FieldName: "audio", Path: audioPath}}},
//	}, &out)
package httpclient
