package tdsvalue

// fixed width scalars, all little-endian

func readTinyInt(c *Cursor) (Value, error) {
	v, err := c.ReadUint8()
	if err != nil {
		return Value{}, err
	}
	return IntValue(int64(v)), nil
}

func readSmallInt(c *Cursor) (Value, error) {
	v, err := c.ReadInt16LE()
	if err != nil {
		return Value{}, err
	}
	return IntValue(int64(v)), nil
}

func readInt(c *Cursor) (Value, error) {
	v, err := c.ReadInt32LE()
	if err != nil {
		return Value{}, err
	}
	return IntValue(int64(v)), nil
}

func readBigInt(c *Cursor) (Value, error) {
	v, err := c.ReadInt64LE()
	if err != nil {
		return Value{}, err
	}
	return IntValue(v), nil
}

func readReal(c *Cursor) (Value, error) {
	v, err := c.ReadFloatLE()
	if err != nil {
		return Value{}, err
	}
	return FloatValue(float64(v)), nil
}

func readFloat(c *Cursor) (Value, error) {
	v, err := c.ReadDoubleLE()
	if err != nil {
		return Value{}, err
	}
	return FloatValue(v), nil
}

const moneyScale = 10000

func readSmallMoney(c *Cursor) (Value, error) {
	v, err := c.ReadInt32LE()
	if err != nil {
		return Value{}, err
	}
	return FloatValue(float64(v) / moneyScale), nil
}

// money is sent as two 32 bit halves, the signed high half first
func readMoney(c *Cursor) (Value, error) {
	high, err := c.ReadInt32LE()
	if err != nil {
		return Value{}, err
	}
	low, err := c.ReadUint32LE()
	if err != nil {
		return Value{}, err
	}
	v := int64(high)<<32 | int64(low)
	return FloatValue(float64(v) / moneyScale), nil
}

func readBit(c *Cursor) (Value, error) {
	v, err := c.ReadUint8()
	if err != nil {
		return Value{}, err
	}
	return BoolValue(v != 0), nil
}
