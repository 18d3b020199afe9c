// Package monitor wires the event source, extension filter, settle delay,
// and transcription pipeline into the long-running watch loop.
//
// Processing is strictly serialized: the loop does not consume the next
// creation event until the current file reaches a terminal outcome. The
// settle delay and the transcription call are the only suspension points,
// and both block the single worker on purpose — expected load is one
// operator dropping files into a directory, not a production queue.
package monitor
