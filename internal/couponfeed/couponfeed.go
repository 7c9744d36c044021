// Package couponfeed imports coupon codes that appear in several partner
// feeds. Each feed is a gzip file with one CODE[,DISCOUNT] entry per line.
package couponfeed

import (
	"bufio"
	"context"
	"math/bits"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-faster/errors"
	"github.com/klauspost/pgzip"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/shop-backoffice/internal/domain/coupon"
)

// maxFeeds is the width of the per-code feed bitmask.
const maxFeeds = 64

// Config tunes an Importer. Zero fields take the defaults.
type Config struct {
	// MinSources is the number of feeds a code must appear in.
	MinSources int
	// DefaultDiscount applies to codes whose lines carry no discount. Zero
	// is a valid value; callers wanting the usual discount pass
	// StandardDiscount.
	DefaultDiscount int
	// Capacity and FPR size the bloom filter of each feed.
	Capacity uint
	FPR      float64
	Now      func() time.Time
}

// StandardDiscount is the usual percentage for codes listed without one.
const StandardDiscount = 10

func (c *Config) setDefaults() {
	if c.MinSources <= 0 {
		c.MinSources = 2
	}
	if c.Capacity == 0 {
		c.Capacity = 1_000_000
	}
	if c.FPR == 0 {
		c.FPR = 0.001
	}
	if c.Now == nil {
		c.Now = time.Now
	}
}

// Result summarizes an import.
type Result struct {
	Feeds    int
	Lines    uint64
	Skipped  uint64
	Accepted int
	Created  int
}

// Importer scans feeds in two passes. The first builds one bloom filter per
// feed; the second keeps the codes that other feeds' filters also contain
// and confirms them by exact feed membership.
type Importer struct {
	coupons coupon.Repository
	lg      *zap.Logger
	cfg     Config
}

// NewImporter returns an Importer writing to coupons.
func NewImporter(coupons coupon.Repository, lg *zap.Logger, cfg Config) *Importer {
	cfg.setDefaults()
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Importer{coupons: coupons, lg: lg, cfg: cfg}
}

// entry is one parsed feed line.
type entry struct {
	code     string
	discount int
	known    bool
}

// parseLine reads CODE[,DISCOUNT]. Blank lines, over-long codes and
// discounts outside 0..100 are rejected.
func parseLine(line string) (entry, bool) {
	code, rest, hasDiscount := strings.Cut(strings.TrimSpace(line), ",")
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || len(code) > coupon.MaxCodeLen {
		return entry{}, false
	}
	e := entry{code: code}
	if hasDiscount {
		d, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || d < 0 || d > 100 {
			return entry{}, false
		}
		e.discount, e.known = d, true
	}
	return e, true
}

// candidate collects the feeds a code was confirmed in.
type candidate struct {
	feeds    uint64
	discount int
	known    bool
}

// Import reads every *.gz feed in dir and get-or-creates the accepted codes.
func (im *Importer) Import(ctx context.Context, dir string) (*Result, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.gz"))
	if err != nil {
		return nil, errors.Wrap(err, "list feeds")
	}
	slices.Sort(files)
	switch {
	case len(files) < im.cfg.MinSources:
		return nil, errors.Errorf("found %d feeds in %s, need at least %d", len(files), dir, im.cfg.MinSources)
	case len(files) > maxFeeds:
		return nil, errors.Errorf("found %d feeds in %s, at most %d are supported", len(files), dir, maxFeeds)
	}

	res := &Result{Feeds: len(files)}

	im.lg.Info("Pass 1: building bloom filters", zap.Int("feeds", len(files)))
	filters, err := im.buildFilters(ctx, files)
	if err != nil {
		return nil, errors.Wrap(err, "build bloom filters")
	}

	im.lg.Info("Pass 2: finding candidate codes")
	perFeed, err := im.findCandidates(ctx, files, filters)
	if err != nil {
		return nil, errors.Wrap(err, "find candidates")
	}

	merged := make(map[string]candidate)
	for idx, fr := range perFeed {
		res.Lines += fr.lines
		res.Skipped += fr.skipped
		for code, e := range fr.codes {
			c := merged[code]
			c.feeds |= 1 << uint(idx)
			// The lowest numbered feed with a discount wins.
			if e.known && !c.known {
				c.discount, c.known = e.discount, true
			}
			merged[code] = c
		}
	}

	accepted := make([]string, 0, len(merged))
	for code, c := range merged {
		if bits.OnesCount64(c.feeds) >= im.cfg.MinSources {
			accepted = append(accepted, code)
		}
	}
	slices.Sort(accepted)
	res.Accepted = len(accepted)
	im.lg.Info("Codes accepted", zap.Int("count", len(accepted)))

	now := im.cfg.Now()
	for _, code := range accepted {
		c := merged[code]
		discount := im.cfg.DefaultDiscount
		if c.known {
			discount = c.discount
		}
		_, created, err := im.coupons.GetOrCreate(ctx, coupon.Issue(code, discount, now))
		if err != nil {
			return res, errors.Wrapf(err, "get or create coupon %s", code)
		}
		if created {
			res.Created++
		}
	}
	return res, nil
}

// buildFilters creates one bloom filter per feed, concurrently.
func (im *Importer) buildFilters(ctx context.Context, files []string) ([]*bloom.BloomFilter, error) {
	filters := make([]*bloom.BloomFilter, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			filter := bloom.NewWithEstimates(im.cfg.Capacity, im.cfg.FPR)
			var n uint64
			if err := streamFeed(ctx, path, func(line string) {
				if e, ok := parseLine(line); ok {
					filter.AddString(e.code)
					n++
				}
			}); err != nil {
				return err
			}
			im.lg.Debug("Feed indexed", zap.String("feed", filepath.Base(path)), zap.Uint64("codes", n))
			filters[i] = filter
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return filters, nil
}

type feedResult struct {
	codes   map[string]entry
	lines   uint64
	skipped uint64
}

// findCandidates rescans every feed and keeps the codes that at least
// MinSources-1 other filters contain. Bloom false positives are removed when
// the per-feed results are merged.
func (im *Importer) findCandidates(ctx context.Context, files []string, filters []*bloom.BloomFilter) ([]feedResult, error) {
	results := make([]feedResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, path := range files {
		g.Go(func() error {
			fr := feedResult{codes: make(map[string]entry)}
			if err := streamFeed(ctx, path, func(line string) {
				fr.lines++
				e, ok := parseLine(line)
				if !ok {
					fr.skipped++
					return
				}
				others := 0
				for j, f := range filters {
					if j != i && f.TestString(e.code) {
						others++
					}
				}
				if others+1 < im.cfg.MinSources {
					return
				}
				if prev, seen := fr.codes[e.code]; !seen || (!prev.known && e.known) {
					fr.codes[e.code] = e
				}
			}); err != nil {
				return err
			}
			results[i] = fr
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// streamFeed calls fn for every line of the gzip file at path.
func streamFeed(ctx context.Context, path string, fn func(line string)) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer func() { _ = f.Close() }()

	gz, err := pgzip.NewReader(f)
	if err != nil {
		return errors.Wrapf(err, "gzip reader for %s", path)
	}
	defer func() { _ = gz.Close() }()

	scanner := bufio.NewScanner(gz)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "scan %s", path)
	}
	return nil
}
