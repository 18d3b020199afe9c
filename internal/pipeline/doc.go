// Package pipeline contains the per-file transcription state machine and the
// extension filter that guards it.
//
// Process drives one accepted file through read, submit, persist, and report.
// It always returns exactly one Outcome: StatusSuccess once the transcript
// artifact exists on disk, StatusError when the read, the transcription call,
// or the write fails. Errors never escalate past the outcome; the monitor
// keeps consuming events regardless.
package pipeline
