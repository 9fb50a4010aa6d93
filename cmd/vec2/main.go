package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
	"linearmath.dev/pkg/assert"
	"linearmath.dev/pkg/ctrlc"
	"linearmath.dev/pkg/packet"
	prettylog "linearmath.dev/pkg/pretty-log"
	quickmath "linearmath.dev/pkg/quick-math"
	"linearmath.dev/pkg/utils"
	vectorstore "linearmath.dev/pkg/vector-store"
)

const usage = `usage: vec2 [-store json|sqlite] [-path P] [-width 32|64] [-log LEVEL] COMMAND

commands:
  ops X Y [ANGLE]      length, angle, normalized and rotated forms
  put NAME X Y         store a vector
  get NAME             print a stored vector
  list [-format F]     print every stored vector (text, json, yaml)
  encode X Y           write a framed vector packet to stdout
  import               read framed vector packets from stdin into the store`

type exportVector struct {
	Id      string     `json:"id" yaml:"id"`
	Name    string     `json:"name" yaml:"name"`
	Width   int        `json:"width" yaml:"width"`
	X       float64    `json:"x" yaml:"x"`
	Y       float64    `json:"y" yaml:"y"`
	Padding [2]float64 `json:"padding" yaml:"padding,flow"`
}

func parseScalar(s string) (quickmath.Scalar, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not a number %q: %w", s, err)
	}
	return quickmath.Scalar(f), nil
}

func parseVector(args []string) (quickmath.Vector2, error) {
	if len(args) < 2 {
		return quickmath.Vector2{}, errors.New("expected X and Y")
	}
	x, err := parseScalar(args[0])
	if err != nil {
		return quickmath.Vector2{}, err
	}
	y, err := parseScalar(args[1])
	if err != nil {
		return quickmath.Vector2{}, err
	}
	return quickmath.NewVector2(x, y), nil
}

func openStore(cfg config) (vectorstore.Store, func(), error) {
	switch cfg.store {
	case "sqlite":
		db := vectorstore.NewSqlite(cfg.path)
		if err := db.SetSqliteModes(); err != nil {
			db.Close()
			return nil, nil, err
		}
		if err := db.CreateStoredVectors(); err != nil {
			db.Close()
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	case "json":
		db, err := vectorstore.NewJSONMemory(cfg.path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() {}, nil
	}
	assert.Never("unknown store survived config parsing", "store", cfg.store)
	return nil, nil, nil
}

func runOps(out io.Writer, args []string) error {
	v, err := parseVector(args)
	if err != nil {
		return err
	}

	var angle quickmath.Scalar
	if len(args) > 2 {
		angle, err = parseScalar(args[2])
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "vector:     %s\n", v)
	fmt.Fprintf(out, "length:     %g\n", v.Len())
	fmt.Fprintf(out, "length2:    %g\n", v.LenSq())
	fmt.Fprintf(out, "angle:      %g\n", v.Angle())
	fmt.Fprintf(out, "absolute:   %s\n", v.Absolute())
	if v.LenSq() == 0 {
		fmt.Fprintf(out, "normalized: undefined for the zero vector\n")
	} else {
		fmt.Fprintf(out, "normalized: %s\n", v.Normalized())
	}
	fmt.Fprintf(out, "rotated:    %s\n", v.Rotated(angle))
	fmt.Fprintf(out, "vector3:    %s\n", v.Vector3())
	return nil
}

func toExport(vec vectorstore.StoredVector) (exportVector, error) {
	v, err := vec.Vector2()
	if err != nil {
		return exportVector{}, fmt.Errorf("record %s: %w", vec.Name, err)
	}
	raw := v.SerializeDouble()
	return exportVector{
		Id:      vec.Id,
		Name:    vec.Name,
		Width:   vec.Width,
		X:       raw.XY[0],
		Y:       raw.XY[1],
		Padding: [2]float64{raw.XY[2], raw.XY[3]},
	}, nil
}

func runList(out io.Writer, store vectorstore.Store, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	format := fs.String("format", "text", "text, json or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}

	all, err := store.GetAll()
	if err != nil {
		return err
	}

	rows := []exportVector{}
	for _, vec := range all {
		row, err := toExport(vec)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	switch *format {
	case "text":
		for _, vec := range all {
			fmt.Fprintln(out, vec.String())
		}
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		enc := yaml.NewEncoder(out)
		defer enc.Close()
		return enc.Encode(rows)
	}
	return fmt.Errorf("unknown format %q", *format)
}

// runImport drains framed packets from in into the store until EOF or ctx is
// done. Close packets are skipped; a stream ending mid packet is an error.
func runImport(ctx context.Context, in io.Reader, store vectorstore.Store, logger *slog.Logger) (int, error) {
	g, ctx := errgroup.WithContext(ctx)
	framer := packet.NewPacketFramer()
	imported := 0

	g.Go(func() error {
		defer close(framer.C)
		return packet.FrameWithReader(ctx, &framer, in)
	})

	// Drains framer.C even after a failure; Push blocks on a full channel.
	g.Go(func() error {
		var firstErr error
		for pkt := range framer.C {
			if firstErr != nil {
				continue
			}
			if packet.IsCloseConnection(pkt) {
				logger.Info("close packet received")
				continue
			}
			firstErr = importPacket(pkt, imported, store, logger)
			if firstErr == nil {
				imported++
			}
		}
		return firstErr
	})

	err := g.Wait()
	return imported, err
}

func importPacket(pkt *packet.Packet, n int, store vectorstore.Store, logger *slog.Logger) error {
	v, err := pkt.Vector2()
	if err != nil {
		return err
	}
	vec, err := vectorstore.NewStoredVector(fmt.Sprintf("import-%d", n), v, pkt.Width())
	if err != nil {
		return err
	}
	if err := store.Put(vec); err != nil {
		return err
	}
	logger.Debug("imported", "vector", vec.String())
	return nil
}

func run(args []string) error {
	cfg, rest, err := parseConfig(args)
	if err != nil {
		return err
	}

	logger := prettylog.SetProgramLevelPrettyLogger(prettylog.ParseLevel(cfg.logLevel)).With("area", "vec2")

	if len(rest) == 0 {
		return errors.New(usage)
	}
	cmd, rest := rest[0], rest[1:]

	switch cmd {
	case "ops":
		return runOps(os.Stdout, rest)
	case "encode":
		v, err := parseVector(rest)
		if err != nil {
			return err
		}
		pkt := packet.CreateVector2(v, cfg.width)
		prettylog.Trace(logger, "encoded", "packet", pkt.String())
		return utils.WriteAll(pkt.Bytes(), os.Stdout)
	}

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("unable to open %s store at %s: %w", cfg.store, cfg.path, err)
	}
	defer closeStore()

	switch cmd {
	case "put":
		if len(rest) < 3 {
			return errors.New("put expects NAME X Y")
		}
		v, err := parseVector(rest[1:])
		if err != nil {
			return err
		}
		vec, err := vectorstore.NewStoredVector(rest[0], v, cfg.width)
		if err != nil {
			return err
		}
		if err := store.Put(vec); err != nil {
			return err
		}
		fmt.Println(vec.Id)
		return nil

	case "get":
		if len(rest) < 1 {
			return errors.New("get expects NAME")
		}
		vec := store.GetByName(rest[0])
		if vec == nil {
			return fmt.Errorf("no vector named %q", rest[0])
		}
		fmt.Println(vec.String())
		return nil

	case "list":
		return runList(os.Stdout, store, rest)

	case "import":
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		ctrlc.HandleCtrlC(cancel, time.Millisecond*250)

		n, err := runImport(ctx, os.Stdin, store, logger)
		logger.Info("import finished", "count", n, "total", store.Count())
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}

	return fmt.Errorf("unknown command %q\n%s", cmd, usage)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
