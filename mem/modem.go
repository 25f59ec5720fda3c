// Copyright (c) WithSecure Corporation
// https://foundry.withsecure.com
//
// Use of this source code is governed by the license
// that can be found in the LICENSE file.

package mem

// This memory layout grants the first 32KB of application RAM to the
// Non-secure modem library, which places its IPC buffers there.
const (
	// Application RAM
	RAMStart = 0x20000000
	RAMSize  = 0x00040000 // 256KB

	// SPU RAM region granularity
	RegionSize = 0x00002000 // 8KB

	// Non-secure shared memory used for modem IPC
	SharedStart = 0x20000000
	SharedEnd   = 0x20008000 // 32KB
)

// Peripheral IDs which must be Non-secure for the modem library.
const (
	// REGULATORS
	PeriphRegulators = 4
	// CLOCK and POWER
	PeriphClockPower = 5
	// IPC
	PeriphIPC = 42
)

// Peripherals lists the peripheral IDs granted to the Non-secure modem
// library.
var Peripherals = []int{
	PeriphRegulators,
	PeriphClockPower,
	PeriphIPC,
}

// Interrupt configuration, priorities are in implemented NVIC bits (lower
// values pre-empt higher ones).
const (
	// IPC interrupt line, on nRF91 the IRQ number matches the peripheral ID
	IPCIRQ = PeriphIPC

	// PriorityBits is the number of implemented NVIC priority bits.
	PriorityBits = 3

	// SchedulerPriority is the priority of the timer driving the task
	// scheduler, no modem interrupt can pre-empt it.
	SchedulerPriority = 1

	// IPCPriority is the default IPC interrupt priority.
	IPCPriority = 2
)

// compile time layout checks: an unaligned or inverted shared extent, or one
// outside application RAM, fails to build.
const (
	_ uint = SharedEnd - SharedStart - RegionSize
	_ uint = SharedStart - RAMStart
	_ uint = (RAMStart + RAMSize) - SharedEnd
	_ uint = RegionSize - 1 - (SharedStart-RAMStart)%RegionSize*RegionSize
	_ uint = RegionSize - 1 - (SharedEnd-RAMStart)%RegionSize*RegionSize
)
