package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// keyModMask keeps Shift, Lock, Control and Mod1-Mod5; pointer button bits
// in a key event's state are dropped.
const keyModMask = xproto.ModMaskShift | xproto.ModMaskLock | xproto.ModMaskControl |
	xproto.ModMask1 | xproto.ModMask2 | xproto.ModMask3 | xproto.ModMask4 | xproto.ModMask5

// GrabKey parses a key sequence such as "Mod4-space" and grabs it on the
// root window for every keycode the keysym maps to, including the lock
// modifier variants in xevent.IgnoreMods. Grabs are asynchronous.
func (c *Connection) GrabKey(keys string) (mods uint16, keycodes []xproto.Keycode, err error) {
	if c.isClosed() {
		return 0, nil, ErrConnectionClosed
	}
	mods, keycodes, err = keybind.ParseString(c.XUtil, keys)
	if err != nil {
		return 0, nil, fmt.Errorf("invalid key sequence %q: %w", keys, err)
	}
	if len(keycodes) == 0 {
		return 0, nil, fmt.Errorf("key sequence %q has no keycode on this keyboard", keys)
	}

	for _, kc := range keycodes {
		var grabErr error
		if err := c.request(func() {
			grabErr = keybind.GrabChecked(c.XUtil, c.Root, mods, kc)
		}); err != nil {
			return 0, nil, err
		}
		if grabErr != nil {
			return 0, nil, fmt.Errorf("failed to grab %q (keycode %d): %w", keys, kc, grabErr)
		}
	}
	return mods, keycodes, nil
}

// KeyState reduces a key event's state to its modifiers, minus the lock
// modifiers that grabs ignore.
func KeyState(state uint16) uint16 {
	var ignored uint16
	for _, m := range xevent.IgnoreMods {
		ignored |= m
	}
	return state & keyModMask &^ ignored
}

func configureIgnoreMods(xu *xgbutil.XUtil) {
	// Always ignore CapsLock.
	caps := uint16(xproto.ModMaskLock)

	numLock := modMaskForKeysym(xu, "Num_Lock")
	scrollLock := modMaskForKeysym(xu, "Scroll_Lock")

	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	xevent.IgnoreMods = ignoreModCombos(base)
}

// ignoreModCombos returns 0 plus every non-empty combination of base.
func ignoreModCombos(base []uint16) []uint16 {
	unique := make(map[uint16]struct{})
	combos := []uint16{0}
	unique[0] = struct{}{}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		if _, ok := unique[mask]; ok {
			continue
		}
		unique[mask] = struct{}{}
		combos = append(combos, mask)
	}
	return combos
}

func modMaskForKeysym(xu *xgbutil.XUtil, keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(xu, keysym) {
		if mask := keybind.ModGet(xu, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
