// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

// errNoServersAreCreated signals a wiring fault: NewServer was handed a
// configuration that enables no transport, so there is nothing to run.
var errNoServersAreCreated = errors.New("no servers are created")
