// Package capture records a page's diagnostic signals while a test runs.
//
// It collects console errors/warnings and failed network traffic and, when
// the test ultimately fails, publishes them as the two reserved text
// attachments the reporter knows how to render. A recorder that saw nothing
// publishes nothing.
package capture
