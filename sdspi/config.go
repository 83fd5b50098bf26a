package sdspi

// PollLimits bounds every busy-poll loop in this package (§5 "every wait has
// a bounded attempt count"). Tests shrink these so a timeout path can be
// exercised without burning the full production budget.
type PollLimits struct {
	R1Poll           int // get_r1 attempts, spec ~254
	TokenPoll        int // start-block token wait, spec 254-4095
	DataResponsePoll int // write data-response token wait, spec ~254
	WriteBusyPoll    int // write busy-line wait, spec ~508
	EraseBusyPoll    int // erase busy-line wait, spec ~65534
	IdleExitAttempts int // CMD55+ACMD41 loop bound, spec >=100
	GoIdleAttempts   int // CMD0 retry bound, spec 10
	ColdClocks       int // cold-clock count before CMD0, spec >=74
	WriteGuardClocks int // post-write guard window, spec ~254 dummy bytes
}

// DefaultPollLimits returns the spec-mandated production bounds.
func DefaultPollLimits() PollLimits {
	return PollLimits{
		R1Poll:           254,
		TokenPoll:        4095,
		DataResponsePoll: 254,
		WriteBusyPoll:    508,
		EraseBusyPoll:    65534,
		IdleExitAttempts: 100,
		GoIdleAttempts:   10,
		ColdClocks:       80,
		WriteGuardClocks: 254,
	}
}

// CardConfig carries startup configuration that is not discovered from the
// card itself.
type CardConfig struct {
	// HostSupportsHC governs the HCS bit (0x40000000) of the ACMD41
	// argument during idle-exit.
	HostSupportsHC bool
	Limits         PollLimits
}

// DefaultCardConfig returns a host that supports High Capacity cards with
// production poll limits.
func DefaultCardConfig() CardConfig {
	return CardConfig{HostSupportsHC: true, Limits: DefaultPollLimits()}
}
