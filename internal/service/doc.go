// Package service contains the application-specific use cases that tie the
// ingestion, extraction, chunking, generation, and export packages into the
// end-to-end flashcard pipeline.
//
// The central type is PipelineService: it receives its collaborators through
// constructor injection (the ingest resolver, the chunker, and a
// ChunkGenerator, normally a generation.Orchestrator bound to one backend)
// and accumulates generated cards into a domain.FlashcardCollection.
//
// Error handling follows a collect-don't-abort policy: a failure in one
// input unit or one chunk is recorded into the domain.ProcessingResult and
// the run continues, so the overall status degrades from success to
// partial-success rather than failing outright. Only construction and export
// report errors directly, wrapped in PipelineError with the failing
// operation named.
package service
