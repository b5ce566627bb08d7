// SPDX-FileCopyrightText: 2026 threadkit contributors
// SPDX-License-Identifier: Apache-2.0

/*
Package semaphore provides a channel-based counting semaphore with blocking,
non-blocking, timed, and context-aware waits.

Unlike a resource-slot semaphore, the count here is the number of available
units: Post always increments, and Wait blocks until at least one unit is
available.  This makes the type usable both as a classic counting semaphore
and as a wake-channel for higher-level primitives built on top of it.
*/
package semaphore
