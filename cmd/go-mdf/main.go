package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	gomdf "github.com/wilhasse/go-mdf"
	"github.com/wilhasse/go-mdf/schema"
	"github.com/wilhasse/go-mdf/spatial"
)

// Exit codes.
const (
	exitOK           = 0
	exitFileNotFound = 2
	exitCorruptFile  = 3
	exitUnknownTable = 4
)

func main() {
	var (
		file     = flag.String("file", "", "Path to MDF data file (required)")
		table    = flag.String("table", "", "Table to dump (default: list tables)")
		format   = flag.String("format", "text", "Output format: text or json")
		showRows = flag.Bool("rows", false, "Show table rows")
		maxRows  = flag.Int("max-rows", 100, "Maximum rows to display")
		lookup   = flag.String("lookup", "", "Spatial lookup: lat,lon,radius_meters")
		sqlFile  = flag.String("sql", "", "Path to SQL file with CREATE TABLE to verify against")
		logFile  = flag.String("log-file", "", "Write logs to this file (rotated)")
		verbose  = flag.Bool("v", false, "Verbose output")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "MDF Page Parser Tool\n\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -file data.mdf\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file data.mdf -table Cities -rows\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -file data.mdf -table Cities -lookup 55.78,37.35,10000\n", os.Args[0])
	}

	flag.Parse()

	if *file == "" {
		fmt.Fprintf(os.Stderr, "Error: -file is required\n\n")
		flag.Usage()
		os.Exit(exitFileNotFound)
	}

	log := buildLogger(*logFile, *verbose)
	defer log.Sync()

	db, err := gomdf.Open(*file, gomdf.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		if gomdf.IsKind(err, gomdf.KindFileUnavailable) {
			os.Exit(exitFileNotFound)
		}
		os.Exit(exitCorruptFile)
	}
	defer db.Close()

	if *table == "" {
		listTables(db)
		return
	}

	info, err := db.FindTable(*table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if gomdf.IsKind(err, gomdf.KindUnknownTable) {
			os.Exit(exitUnknownTable)
		}
		os.Exit(exitCorruptFile)
	}

	if *sqlFile != "" {
		expected, err := schema.ParseExpectedTableFile(*sqlFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing SQL file: %v\n", err)
			os.Exit(exitCorruptFile)
		}
		if err := expected.Match(info.Table); err != nil {
			fmt.Fprintf(os.Stderr, "Schema mismatch: %v\n", err)
			os.Exit(exitCorruptFile)
		}
		fmt.Printf("schema matches %s\n", *sqlFile)
	}

	switch {
	case *lookup != "":
		runLookup(db, *table, *lookup, *maxRows)
	case *showRows:
		dumpRows(db, info, *maxRows)
	default:
		dumpSchema(info, *format)
	}
}

func buildLogger(logFile string, verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	if logFile == "" {
		cfg := zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(level)
		log, err := cfg.Build()
		if err != nil {
			return zap.NewNop()
		}
		return log
	}
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    64, // MiB
		MaxBackups: 3,
	})
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink, level)
	return zap.New(core)
}

func listTables(db *gomdf.Database) {
	infos, err := db.TableInfos()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading schema: %v\n", err)
		os.Exit(exitCorruptFile)
	}
	fmt.Printf("database %q, %d pages, %d tables\n", db.Name(), db.PageCount(), len(infos))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  ID\tNAME\tCOLUMNS\tCLUSTERED\tSPATIAL\n")
	for _, info := range infos {
		fmt.Fprintf(w, "  %d\t%s\t%d\t%v\t%v\n",
			info.Table.ID, info.Table.Name, len(info.Table.Columns),
			info.Cluster != nil, info.Spatial != nil)
	}
	w.Flush()
	if errs, _ := db.TableErrors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintf(os.Stderr, "warning: %v\n", e)
		}
	}
}

func dumpSchema(info *schema.TableInfo, outFormat string) {
	if outFormat == "json" {
		var pk *schema.PrimaryKey
		if info.Cluster != nil {
			pk = info.Cluster.PrimaryKey
		}
		out, err := schema.MarshalTableJSON(info.Table, pk)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(exitCorruptFile)
		}
		os.Stdout.Write(out)
		return
	}
	var pk *schema.PrimaryKey
	if info.Cluster != nil {
		pk = info.Cluster.PrimaryKey
	}
	fmt.Print(info.Table.TypeSchema(pk))
}

func dumpRows(db *gomdf.Database, info *schema.TableInfo, maxRows int) {
	dt := db.NewDataTable(info)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  #\t")
	for _, c := range info.Table.Columns {
		fmt.Fprintf(w, "%s\t", c.Name)
	}
	fmt.Fprintln(w)
	it := dt.Rows(context.Background())
	n := 0
	for it.Next() && n < maxRows {
		values, err := it.Row().Values()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error decoding row: %v\n", err)
			os.Exit(exitCorruptFile)
		}
		fmt.Fprintf(w, "  %d\t", n)
		for _, v := range values {
			fmt.Fprintf(w, "%s\t", v)
		}
		fmt.Fprintln(w)
		n++
	}
	if err := it.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning rows: %v\n", err)
		os.Exit(exitCorruptFile)
	}
	w.Flush()
	fmt.Printf("%d row(s)\n", n)
}

func runLookup(db *gomdf.Database, table, spec string, maxRows int) {
	parts := strings.Split(spec, ",")
	if len(parts) != 3 {
		fmt.Fprintf(os.Stderr, "Error: -lookup wants lat,lon,radius_meters\n")
		os.Exit(exitFileNotFound)
	}
	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lon, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	radius, err3 := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err1 != nil || err2 != nil || err3 != nil {
		fmt.Fprintf(os.Stderr, "Error: bad -lookup values\n")
		os.Exit(exitFileNotFound)
	}
	center := spatial.Point{Lat: lat, Lon: lon}
	it, err := db.SpatialLookup(context.Background(), table, center, radius)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if gomdf.IsKind(err, gomdf.KindUnknownTable) {
			os.Exit(exitUnknownTable)
		}
		os.Exit(exitCorruptFile)
	}
	n := 0
	for it.Next() && n < maxRows {
		hit := it.Hit()
		fmt.Printf("pk=%d cell=%s attr=%s", hit.IndexRow.PK0, hit.IndexRow.CellID, hit.IndexRow.Attr)
		if hit.Row != nil {
			if values, err := hit.Row.Values(); err == nil {
				fmt.Printf(" row=[")
				for i, v := range values {
					if i > 0 {
						fmt.Print(" ")
					}
					fmt.Print(v)
				}
				fmt.Print("]")
			}
		}
		fmt.Println()
		n++
	}
	if err := it.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error during lookup: %v\n", err)
		os.Exit(exitCorruptFile)
	}
	fmt.Printf("%d hit(s)\n", n)
}
