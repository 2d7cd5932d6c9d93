// Package handler exposes the meetnotes pipeline over HTTP.
//
//	GET  /                   banner
//	POST /upload             multipart "audio" file, runs the pipeline
//	POST /extract-keypoints  {"transcription": "..."} to {"keypoints": [...]}
//	GET  /download/:id       stored plain-text report
//
// Errors are rendered as errors.AppError JSON bodies by server.RespondWithError.
package handler
