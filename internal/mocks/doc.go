// Package mocks provides shared test doubles for the generation backend.
//
// MockBackend records every prompt it receives and answers with a fixed
// response, a fixed error or a CompleteFn. NewMockBackendWithSamples answers
// each artifact prompt with a well-formed sample (SampleSummaryResponse,
// SampleQuizResponse, SampleFlashcardsResponse):
//
//	backend := mocks.NewMockBackendWithSamples()
//	pipeline, err := generation.NewPipeline(backend, logger)
//	...
//	assert.Equal(t, 1, backend.CallCount())
package mocks
