package main

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	tdsvalue "github.com/denisenkom/go-tdsvalue"
	"github.com/denisenkom/go-tdsvalue/internal/mstype"
	"github.com/denisenkom/go-tdsvalue/msdsn"
)

type rootOptions struct {
	dsn   string
	debug bool
	trace bool
}

type decodeOptions struct {
	typeName   string
	length     uint32
	precision  uint8
	scale      uint8
	lcid       uint32
	sortID     uint8
	utc        bool
	lowerGuids bool
	packets    bool
	count      int
}

func newRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	var opts rootOptions
	cmd := &cobra.Command{
		Use:           "tdsvalue",
		Short:         "Decode TDS column values",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.dsn, "dsn", "", "Connection string supplying useutc, lowercaseguids, log and packet size")
	flags.BoolVar(&opts.debug, "debug", false, "Log every decoded value")
	flags.BoolVar(&opts.trace, "trace", false, "Hex dump the input as it is read")

	cmd.AddCommand(newDecodeCommand(&opts, in, out), newTypesCommand(out))
	cmd.SetIn(in)
	cmd.SetOut(out)
	return cmd
}

func newDecodeCommand(root *rootOptions, in io.Reader, out io.Writer) *cobra.Command {
	var opts decodeOptions
	cmd := &cobra.Command{
		Use:   "decode [HEX...]",
		Short: "Decode values from hex, read from the arguments or stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd.Context(), root, &opts, cmd.Flags(), args, in, out, cmd.ErrOrStderr())
		},
	}
	installDecodeFlags(cmd.Flags(), &opts)
	return cmd
}

func installDecodeFlags(flags *pflag.FlagSet, opts *decodeOptions) {
	flags.StringVarP(&opts.typeName, "type", "t", "", "Type name (IntN, NVarChar, ...) or tag (0x26)")
	flags.Uint32Var(&opts.length, "length", 0, "Declared length, 65535 for MAX types")
	flags.Uint8Var(&opts.precision, "precision", 0, "Numeric precision")
	flags.Uint8Var(&opts.scale, "scale", 0, "Numeric or fractional second scale")
	flags.Uint32Var(&opts.lcid, "lcid", 0, "Collation LCID and flags of narrow character data")
	flags.Uint8Var(&opts.sortID, "sort-id", 0, "Collation sort id of narrow character data")
	flags.BoolVar(&opts.utc, "utc", true, "Build temporal values in UTC")
	flags.BoolVar(&opts.lowerGuids, "lower-guids", false, "Format uniqueidentifier values in lower case")
	flags.BoolVar(&opts.packets, "packets", false, "Input is framed in TDS packets")
	flags.IntVarP(&opts.count, "count", "n", 1, "Number of consecutive values to decode")
	_ = cobra.MarkFlagRequired(flags, "type")
}

func parseType(name string) (mstype.ID, error) {
	if id, ok := mstype.ParseName(name); ok {
		return id, nil
	}
	tag, err := strconv.ParseUint(name, 0, 8)
	if err != nil {
		return 0, errors.Errorf("unknown type %q", name)
	}
	if _, ok := mstype.Lookup(uint8(tag)); !ok {
		return 0, errors.Errorf("unsupported type tag 0x%02x", tag)
	}
	return mstype.ID(tag), nil
}

// parseHex decodes hex digits, ignoring white space and an optional 0x
// prefix.
func parseHex(s string) ([]byte, error) {
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(s)
	return b, errors.Wrap(err, "invalid hex input")
}

func loadConfig(root *rootOptions) (msdsn.Config, error) {
	if root.dsn == "" {
		return msdsn.Default(), nil
	}
	return msdsn.Parse(root.dsn)
}

func runDecode(ctx context.Context, root *rootOptions, opts *decodeOptions, flags *pflag.FlagSet, args []string, in io.Reader, out, logOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	typ, err := parseType(opts.typeName)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	// explicit flags win over the connection string
	if flags.Changed("utc") {
		cfg.UseUTC = opts.utc
	}
	if flags.Changed("lower-guids") {
		cfg.LowerCaseGuids = opts.lowerGuids
	}
	if root.debug {
		cfg.LogFlags |= msdsn.LogErrors | msdsn.LogDebug
	}

	var text string
	if len(args) > 0 {
		text = strings.Join(args, "")
	} else {
		raw, err := io.ReadAll(in)
		if err != nil {
			return errors.Wrap(err, "reading stdin")
		}
		text = string(raw)
	}
	payload, err := parseHex(text)
	if err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(logOut)
	if root.debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	dec := tdsvalue.NewDecoderFromConfig(cfg)
	dec.SetContextLogger(tdsvalue.NewLogrusLogger(logger))

	var r io.Reader = bytes.NewReader(payload)
	if root.trace {
		r = tdsvalue.NewReadLogger(r, "input", logger)
	}
	var c *tdsvalue.Cursor
	if opts.packets {
		c = tdsvalue.NewPacketCursor(r, cfg.PacketSize)
	} else {
		c = tdsvalue.NewCursor(r)
	}

	md := tdsvalue.Metadata{
		Type:       typ,
		DataLength: opts.length,
		Precision:  opts.precision,
		Scale:      opts.scale,
	}
	if flags.Changed("lcid") || flags.Changed("sort-id") {
		md.Collation = &tdsvalue.Collation{LcidAndFlags: opts.lcid, SortID: opts.sortID}
	}
	for i := 0; i < opts.count; i++ {
		v, err := dec.Decode(ctx, c, md)
		if err != nil {
			return errors.Wrapf(err, "value %d", i)
		}
		fmt.Fprintf(out, "%s\t%s\n", v.Kind(), v)
	}
	return nil
}

func newTypesCommand(out io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the supported types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := mstype.All()
			sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
			for _, id := range ids {
				fmt.Fprintf(out, "0x%02x\t%s\n", uint8(id), id)
			}
			return nil
		},
	}
}
