// Package deepgram implements the client for Deepgram's prerecorded
// transcription API.
//
// The client submits raw audio bytes to /v1/listen with a fixed set of
// request knobs (model, smart formatting, speaker diarization) and extracts
// the transcript from the first channel's first alternative. Every failure
// mode — transport, HTTP status, response shape — surfaces as one uniform
// services.ErrTranscription so callers never branch on error subtype.
package deepgram
