// Package vision generates TikZ source from geometry diagram images using
// an OpenAI-compatible chat completion endpoint.
//
// The client speaks the vision chat API: each request carries a system
// prompt, a task prompt and the image as a base64 data URL. Any backend
// implementing the OpenAI protocol works; [WithBaseURL] points the client
// at a self-hosted vLLM server, the default targets the OpenAI API.
//
// Three prompt variants are supported: exact recreation, variation
// (preserve relationships, change proportions) and few-shot recreation
// with in-context examples loaded from JSON files. Model responses are
// cleaned by [ExtractTikZ], which tolerates markdown fences and
// surrounding prose and slices out the tikzpicture environment.
package vision
