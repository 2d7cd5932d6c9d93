// Package logger provides structured logging for meetnotes using zerolog.
//
// A single global logger is initialised from the `logging` config section.
// Components derive tagged loggers from it and attach fields as maps:
//
//	log := logger.WithComponent("segmenter")
//	log.Info("chunk exported", logger.Fields(logger.FieldChunkIndex, 3))
//
// Request and recording identifiers travel in the context and are picked up
// by [Logger.WithContext], together with the trace id of the active span.
package logger
