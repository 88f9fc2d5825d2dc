// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"io"

	"pii-quality/internal/help"
	"pii-quality/internal/logger"
	"pii-quality/internal/observability"
	"pii-quality/internal/validators/aadhaar"
	"pii-quality/internal/validators/phone"
)

// NewHelpSystem builds the help system with every check registered.
func NewHelpSystem(out io.Writer, noColor bool) *help.System {
	system := help.NewSystemWithWriter(out, noColor)
	system.RegisterProvider(aadhaar.NewValidator())
	system.RegisterProvider(phone.NewValidator(nil, ""))
	return system
}

// NewObserver builds the stage observer. With debug set, the step tree is
// written to debugOut.
func NewObserver(debug bool, log logger.Logger, debugOut io.Writer) *observability.StandardObserver {
	if !debug {
		return observability.NewStandardObserver(observability.ObservabilityMetrics, log)
	}
	debugObs := observability.NewDebugObserver(debugOut, log)
	return debugObs.StandardObserver
}
