package services

import "context"

// fakeGenClient stands in for the generation backend in tests.
type fakeGenClient struct {
	generateFunc func(ctx context.Context, prompt string) (string, error)
	visionFunc   func(ctx context.Context, image []byte, mimeType, instruction string) (string, error)

	lastPrompt      string
	lastInstruction string
}

func (f *fakeGenClient) Generate(ctx context.Context, prompt string) (string, error) {
	f.lastPrompt = prompt
	if f.generateFunc != nil {
		return f.generateFunc(ctx, prompt)
	}
	return "", nil
}

func (f *fakeGenClient) GenerateVision(ctx context.Context, image []byte, mimeType, instruction string) (string, error) {
	f.lastInstruction = instruction
	if f.visionFunc != nil {
		return f.visionFunc(ctx, image, mimeType, instruction)
	}
	return "", nil
}
