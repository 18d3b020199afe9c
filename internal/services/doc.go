// Package services defines shared error-handling utilities consumed by the
// transcription pipeline and external integrations.
//
// The sentinel markers plus the Wrap helper translate failures into a small,
// uniform taxonomy: the pipeline does not care whether a transcription call
// failed from the network, authentication, or a malformed response — it only
// needs to classify the outcome and log the detail.
package services
