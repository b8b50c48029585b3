// Package server provides HTTP routing, middleware and the OAuth callback used by the CLI and the
// chat-bot webhook.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support. [ChiRouter] implements it
// on a chi mux, so method mismatches answer 405 and unknown paths answer 404.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
// Middleware applies to routes registered after it is added.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback. It validates the state
// parameter, exchanges the code for a token and sends the result through a channel. Only the
// first callback is processed.
//
// # Serving
//
// [Server] runs a router until its context is cancelled, then shuts down gracefully. The auth
// command runs one on the redirect address for the lifetime of a login, and the bot command runs
// one for the webhook.
package server
