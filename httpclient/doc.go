// Package httpclient provides the HTTP client used to reach the external
// engines: the speech recognizer, the diarizer and the language model.
//
// The Client handles base URLs, default headers, authentication and
// body encoding. JSON values, raw bytes and multipart forms (for audio
// uploads) are supported as request bodies. Non-2xx responses come back
// as a classified *Error so callers can decide what is worth retrying;
// ToAppError maps them onto the service error codes.
//
// # Basic Usage
//
//	client, err := httpclient.New(httpclient.Config{
//	    Name:    "pyannote",
//	    BaseURL: "http://localhost:8388",
//	    Timeout: 5 * time.Minute,
//	    Auth:    httpclient.BearerAuth(cfg.HFToken),
//	})
//
//	resp, err := httpclient.Post[diarizeResponse](ctx, client, "/diarize", &httpclient.MultipartBody{
//	    Files: []httpclient.FileField{{FieldName: "audio", FileName: "chunk.wav", Reader: f}},
//	})
package httpclient
