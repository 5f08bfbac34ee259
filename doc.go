// Package testlogging routes application log calls into the output of the
// running Go test, and records them so tests can assert on what was logged.
//
// Key features
//   - Output logger: one write per log call, indented by the depth of the
//     open scopes, with "<Scope: ...>" markers around each scope
//   - Cache logger: an append-only, concurrency-safe record of every entry
//     together with the scopes open when it was logged
//   - Flow-local scopes: BeginScope returns a child context, so scopes follow
//     the context and never leak between concurrent tests
//   - Redaction of configured sensitive values in every message, error and
//     scope rendering
//   - Tolerance of writes after the test completed (ErrTestBoundary), either
//     reported or ignored by configuration
//   - Bridges to zerolog and zap for code that wants real structured output
//     while being tested
//
// Typical usage
//
//	func TestCheckout(t *testing.T) {
//		logger := testlogging.BuildLogger(t)
//		ctx, scope := logger.BeginScope(context.Background(), "checkout")
//		defer scope.Close()
//
//		_ = testlogging.LogInformation(ctx, logger, "order {OrderID} placed", 42)
//		last := logger.Last()
//		require.Equal(t, "order 42 placed", last.Message)
//	}
package testlogging
