package palette

import "github.com/stuxvii/lsd-thumbnail-server/engine/renderer/metadata"

// brickColors maps BrickColor palette identifiers to their RGB values.
var brickColors = map[uint16]metadata.RGB{
	1003: 0x111111,
	148:  0x575857,
	2:    0xA1A5A2,
	1002: 0xCDCDCD,
	40:   0xECECEC,
	1001: 0xF8F8F8,
	348:  0xEDEAEA,
	349:  0xE9DADA,
	1025: 0xFFC9C9,
	337:  0xFF9494,
	344:  0x965555,
	1007: 0xA34B4B,
	350:  0x883E3E,
	339:  0x562424,
	331:  0xFF5959,
	332:  0x750000,
	327:  0x970000,
	1004: 0xFF0000,
	360:  0x966766,
	338:  0xBE6862,
	153:  0x957977,
	41:   0xCD544B,
	21:   0xC4281C,
	101:  0xDA867A,
	47:   0xD9856C,
	176:  0x97695B,
	100:  0xEEC4B6,
	123:  0xD36F4C,
	216:  0x904C2A,
	345:  0x8F4C2A,
	193:  0xCF6024,
	133:  0xD5733D,
	192:  0x694028,
	18:   0xCC8E69,
	361:  0x564236,
	359:  0xAF9483,
	128:  0xAE7A59,
	38:   0xA05F35,
	355:  0x6C584B,
	217:  0x7C5C46,
	364:  0x5A4C42,
	137:  0xE09864,
	125:  0xEAB892,
	25:   0x624732,
	106:  0xDA8541,
	12:   0xCB8442,
	178:  0xB48455,
	365:  0x6A3909,
	1014: 0xAA5500,
	1030: 0xFFCC99,
	168:  0x756C62,
	225:  0xEBB87F,
	105:  0xE29B40,
	121:  0xE7AC58,
	36:   0xF3CF9B,
	127:  0xDCBC81,
	362:  0x7E683F,
	351:  0xBC9B5D,
	356:  0xA0844F,
	346:  0xD3BE96,
	352:  0xC7AC78,
	224:  0xF0D5A0,
	180:  0xD7A94B,
	191:  0xE8AB2D,
	108:  0x685C43,
	138:  0x958A73,
	209:  0xB08E44,
	1017: 0xFFAF00,
	1005: 0xFFB000,
	333:  0xEFB838,
	5:    0xD7C59A,
	353:  0xCABFA3,
	340:  0xF1E7C7,
	334:  0xF8D96D,
	24:   0xF5CD30,
	190:  0xF9D62E,
	226:  0xFDEA8D,
	3:    0xF9E999,
	341:  0xFEF3BB,
	347:  0xE2DCBC,
	157:  0xFFF67B,
	49:   0xF8F184,
	44:   0xF7F18D,
	1008: 0xC1BE42,
	1029: 0xFFFFCC,
	1009: 0xFFFF00,
	134:  0xD8DD56,
	115:  0xC7D23C,
	200:  0x828A5D,
	120:  0xD9E4A7,
	119:  0xA4BD47,
	1022: 0x7F8E64,
	319:  0xB9C4B1,
	324:  0xA8BD99,
	29:   0xA1C48C,
	1021: 0x3A7D15,
	317:  0x7C9C6B,
	323:  0x94BE81,
	6:    0xC2DAB8,
	304:  0x2C651D,
	310:  0x5B9A4C,
	328:  0xB1E5A6,
	318:  0x8AAB85,
	313:  0x1F801D,
	1028: 0xCCFFCC,
	37:   0x4B974B,
	1020: 0x00FF00,
	309:  0x348E40,
	301:  0x506D54,
	48:   0x84B68D,
	141:  0x27462D,
	210:  0x709578,
	28:   0x287F47,
	151:  0x789082,
	1027: 0x9FF3E9,
	1018: 0x12EED4,
	118:  0xB7D7D5,
	1019: 0x00FFFF,
	107:  0x008F9C,
	116:  0x55A5AF,
	1013: 0x04AFEC,
	315:  0x0989CF,
	232:  0x7DBBDD,
	11:   0x80BBDC,
	42:   0xC1DFF0,
	329:  0x98C2DB,
	45:   0xB4D2E4,
	23:   0x0D69AC,
	26:   0x1B2A35,
	1024: 0xAFDDFF,
	43:   0x7BB6E8,
	212:  0x9FC3E9,
	140:  0x203A56,
	143:  0xCFE2F7,
	306:  0x335882,
	102:  0x6E99CA,
	305:  0x527CAE,
	336:  0xC7D4E4,
	135:  0x74869D,
	314:  0x9FADC0,
	145:  0x7988A1,
	195:  0x4667A4,
	196:  0x23478B,
	1012: 0x2154B9,
	1011: 0x002060,
	213:  0x6C81B7,
	149:  0x161D32,
	110:  0x435493,
	112:  0x6874AC,
	307:  0x102ADC,
	303:  0x0010B0,
	220:  0xA7A9CE,
	126:  0xA5A5CB,
	1010: 0x0000FF,
	1026: 0xB1A7FF,
	268:  0x342B75,
	219:  0x6B629B,
	1031: 0x6225D1,
	308:  0x3D1585,
	1006: 0xB480FF,
	1023: 0x8C5B9F,
	104:  0x6B327C,
	218:  0x96709F,
	322:  0x7B2F7B,
	312:  0x592259,
	316:  0x7B007B,
	1015: 0xAA00AA,
	198:  0x8E4285,
	321:  0xA75E9B,
	1032: 0xFF00BF,
	124:  0x923978,
	1016: 0xFF66CC,
	343:  0xD490BD,
	330:  0xFF98DC,
	342:  0xE0B2D0,
	22:   0xC470A0,
	221:  0xCD6298,
	158:  0xE1A4C2,
	222:  0xE4ADC8,
	113:  0xE5ADC8,
	9:    0xE8BAC8,
	223:  0xDC9095,
}
