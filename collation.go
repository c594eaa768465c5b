package tdsvalue

// http://msdn.microsoft.com/en-us/library/dd340437.aspx

// Collation is the five byte collation record sent ahead of narrow
// character data.
type Collation struct {
	LcidAndFlags uint32
	SortID       uint8
}

const collationUTF8Flag = 0x40

func (c Collation) LCID() uint32 {
	return c.LcidAndFlags & 0x000fffff
}

func (c Collation) Flags() uint32 {
	return (c.LcidAndFlags & 0x0ff00000) >> 20
}

func (c Collation) Version() uint32 {
	return (c.LcidAndFlags & 0xf0000000) >> 28
}

// Codepage returns the name of the character set narrow text in this
// collation is encoded with, for example "CP1252" or "UTF-8".
func (c Collation) Codepage() string {
	if c.Flags()&collationUTF8Flag != 0 {
		return "UTF-8"
	}
	if c.SortID != 0 {
		if cp, ok := codepageBySortID(c.SortID); ok {
			return cp
		}
	}
	return codepageByLCID(c.LCID())
}

// SQL collations identify their code page through the sort id.
func codepageBySortID(id uint8) (string, bool) {
	switch {
	case id >= 30 && id <= 34:
		return "CP437", true
	case id >= 40 && id <= 44, id == 49, id >= 55 && id <= 61:
		return "CP850", true
	case id >= 50 && id <= 54, id == 71, id >= 72 && id <= 75, id >= 183 && id <= 186, id >= 210 && id <= 217:
		return "CP1252", true
	case id >= 80 && id <= 98:
		return "CP1250", true
	case id >= 104 && id <= 108:
		return "CP1251", true
	case id >= 112 && id <= 114, id >= 120 && id <= 122, id == 124:
		return "CP1253", true
	case id >= 128 && id <= 130:
		return "CP1254", true
	case id >= 136 && id <= 138:
		return "CP1255", true
	case id >= 144 && id <= 146:
		return "CP1256", true
	case id >= 152 && id <= 160:
		return "CP1257", true
	case id == 192 || id == 193 || id == 200:
		return "CP932", true
	case id == 194 || id == 195 || id == 201:
		return "CP949", true
	case id == 196 || id == 197 || id == 202:
		return "CP950", true
	case id == 198 || id == 199 || id == 203:
		return "CP936", true
	case id >= 204 && id <= 206:
		return "CP874", true
	}
	return "", false
}

func codepageByLCID(lcid uint32) string {
	switch lcid {
	case 0x001e, 0x041e:
		return "CP874"
	case 0x0411:
		return "CP932"
	case 0x0804, 0x1004:
		return "CP936"
	case 0x0012, 0x0412:
		return "CP949"
	case 0x0404, 0x1404, 0x0c04, 0x7c04:
		return "CP950"
	case 0x041c, 0x041a, 0x0405, 0x040e, 0x104e, 0x0415, 0x0418, 0x041b, 0x0424:
		return "CP1250"
	case 0x0423, 0x0402, 0x042f, 0x0419, 0x081a, 0x0c1a, 0x0422:
		return "CP1251"
	case 0x0408:
		return "CP1253"
	case 0x041f, 0x042c, 0x0443:
		return "CP1254"
	case 0x040d:
		return "CP1255"
	case 0x0401, 0x0801, 0xc01, 0x1001, 0x1401, 0x1801, 0x1c01, 0x2001, 0x2401, 0x2801, 0x2c01, 0x3001, 0x3401, 0x3801, 0x3c01, 0x4001, 0x0429, 0x0420:
		return "CP1256"
	case 0x0425, 0x0426, 0x0427, 0x0827:
		return "CP1257"
	case 0x042a:
		return "CP1258"
	case 0x0439:
		// Hindi has no ANSI code page, its collations are Unicode only
		return "UTF-8"
	}
	return "CP1252"
}

func readCollation(c *Cursor) (res Collation, err error) {
	res.LcidAndFlags, err = c.ReadUint32LE()
	if err != nil {
		return res, err
	}
	res.SortID, err = c.ReadUint8()
	return res, err
}
