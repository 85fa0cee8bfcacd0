// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package conversation orchestrates request/response turns.
//
// The Controller coordinates one turn end to end: validate the user
// input, append the user message to the transcript, run the typing
// engine through its thinking and typing phases, and commit the
// generated assistant reply.
//
// # Turn Ordering
//
// Observers see each turn's events strictly in order:
//
//	user committed -> thinking -> typing -> turn committed
//
// The assistant append happens-after the engine's typing-finished signal
// and before any subsequent turn can start. Only one turn may be in
// flight; concurrent submissions are rejected with ErrTurnInFlight.
//
// # Teardown
//
// Shutdown cancels the thinking-delay and settle timers and resets the
// engine, so no pending timer can fire against a disposed controller or
// mutate the transcript after teardown.
package conversation
