// Package limesurveyrc2api provides a client for the LimeSurvey
// RemoteControl 2 API:
// https://api.limesurvey.org/classes/remotecontrol-handle.html
//
// Features:
// - Session key handling with lazy opening and explicit release.
// - Ordered request parameters as required by the RPC interface.
// - Strongly typed helpers for surveys, questions, participant tokens, and iterator-based traversal.
package limesurveyrc2api
