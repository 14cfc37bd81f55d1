// Package providers implements the Completer interface for each supported
// model backend.
//
// Ollama and LM Studio serve local models; OpenAI serves hosted ones. Both
// speak the OpenAI chat-completions wire format, so the HTTP plumbing is
// shared and a provider contributes only its endpoint and credentials.
//
// All calls go through a common retry helper with exponential back-off on
// rate limits and 5xx responses. Tests point the base URL at local httptest
// servers instead of live APIs.
//
// Use [New] to obtain a Completer from the AI configuration section.
package providers
