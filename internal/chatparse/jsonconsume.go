package chatparse

// TryConsumeJSON consumes a JSON value at the cursor, healing truncated
// syntax with the cursor's marker when necessary. On a hard syntax error it
// returns ok=false with no error. On the specific invariant violation of
// spec.md §4.3 — healing occurred but the cursor claims complete input — it
// returns a *Partial error instead of the value.
func (c *Cursor) TryConsumeJSON(marker string) (*Value, Healing, bool, error) {
	v, consumed, healing, err := parsePartialJSON(c.Remaining(), marker)
	if err != nil {
		return nil, Healing{}, false, nil
	}
	if !healing.Empty() && !c.isPartial {
		return nil, Healing{}, false, &Partial{Token: "JSON"}
	}
	c.pos += consumed
	return v, healing, true, nil
}
