// ABOUTME: nRF52840 I2S and CLOCK register map
// ABOUTME: Addresses and field encodings used by the register backend
package nrf52

// Peripheral base addresses.
const (
	clockBase uintptr = 0x40000000
	i2sBase   uintptr = 0x40025000
)

// CLOCK registers.
const (
	clockTasksHFClkStart    = clockBase + 0x000
	clockEventsHFClkStarted = clockBase + 0x100
)

// I2S registers.
const (
	regTasksStart     = i2sBase + 0x000
	regTasksStop      = i2sBase + 0x004
	regEventsRxPtrUpd = i2sBase + 0x104
	regEventsStopped  = i2sBase + 0x108
	regEventsTxPtrUpd = i2sBase + 0x114
	regIntenClr       = i2sBase + 0x308
	regEnable         = i2sBase + 0x500
	regConfigMode     = i2sBase + 0x504
	regConfigRxEn     = i2sBase + 0x508
	regConfigTxEn     = i2sBase + 0x50C
	regConfigMckEn    = i2sBase + 0x510
	regConfigMckFreq  = i2sBase + 0x514
	regConfigRatio    = i2sBase + 0x518
	regConfigSWidth   = i2sBase + 0x51C
	regConfigAlign    = i2sBase + 0x520
	regConfigFormat   = i2sBase + 0x524
	regConfigChannels = i2sBase + 0x528
	regTxdPtr         = i2sBase + 0x540
	regRxTxdMaxCnt    = i2sBase + 0x550
	regPselSck        = i2sBase + 0x564
	regPselLrck       = i2sBase + 0x568
	regPselSdin       = i2sBase + 0x56C
	regPselSdout      = i2sBase + 0x570
)

// Field encodings.
const (
	pselDisconnected = 0xFFFFFFFF

	modeMaster = 0

	swidth16Bit = 1

	alignLeft = 0

	formatI2S = 0 // standard one-clock-delayed framing

	channelsStereo = 0
	channelsLeft   = 1

	enabled  = 1
	disabled = 0
)

// mckFreq32MDiv32 divides the 32 MHz source by 32 for a 1 MHz master
// clock; the value matches the shipped firmware's encoding.
const mckFreq32MDiv32 = 0x70000000

// mckFreqByDiv maps supported master-clock dividers to their register
// encodings.
var mckFreqByDiv = map[int]uint32{
	32: mckFreq32MDiv32,
}

// ratioByFrame maps MCK-per-frame ratios to their register encodings.
var ratioByFrame = map[int]uint32{
	32:  0,
	48:  1,
	64:  2,
	96:  3,
	128: 4,
	192: 5,
	256: 6,
	384: 7,
	512: 8,
}
