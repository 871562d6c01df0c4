// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package main

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/retry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openhome/ohtopology/core/logger"
	"github.com/openhome/ohtopology/core/media"
	"github.com/openhome/ohtopology/core/watchable"
	"github.com/openhome/ohtopology/internal/library"
	"github.com/openhome/ohtopology/internal/mediaendpoint"
	"github.com/openhome/ohtopology/internal/network"
	"github.com/openhome/ohtopology/internal/task"
)

const queryTimeout = 30 * time.Second

// run serves the configured library on a network of its own and walks it
// through a media endpoint session, writing what it finds to out.
func run(config Config, out io.Writer) (err error) {
	if config.LoggingConfig != "" {
		if err := logger.Configure(config.LoggingConfig); err != nil {
			return errors.Annotate(err, "configuring logging")
		}
	}
	log := logger.GetLogger("ohtopology.mediabrowse")

	tracks, err := loadTracks(config)
	if err != nil {
		return errors.Trace(err)
	}

	n, err := network.New(network.Config{
		Name:            "mediabrowse",
		Logger:          logger.GetLogger("ohtopology.network"),
		MaxCacheEntries: config.CacheEntries,
	})
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if stopErr := n.Dispose(); err == nil {
			err = errors.Annotate(stopErr, "stopping network")
		}
	}()

	endpoint := library.NewEndpoint(
		library.NewCatalog(n.TagManager(), tracks),
		logger.GetLogger("ohtopology.library"),
	)
	if err := n.Add(library.NewDevice(uuid.NewString(), endpoint)); err != nil {
		return errors.Trace(err)
	}
	service, err := waitForEndpoint(n, log)
	if err != nil {
		return errors.Trace(err)
	}

	collector := mediaendpoint.NewMetricsCollector()
	if config.MetricsAddr != "" {
		stop, err := serveMetrics(config.MetricsAddr, collector, log)
		if err != nil {
			return errors.Trace(err)
		}
		defer stop()
	}

	supervisor, err := mediaendpoint.NewSupervisor(mediaendpoint.Config{
		Client:  mediaendpoint.NewEndpointClient(n, service),
		Clock:   clock.WallClock,
		Logger:  logger.GetLogger("ohtopology.mediaendpoint"),
		Metrics: collector,
	})
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		supervisor.Close()
		supervisor.Dispose()
	}()

	var session *mediaendpoint.Session
	n.Execute(func() {
		session, err = supervisor.CreateSession().Wait()
	})
	if err != nil {
		return errors.Annotate(err, "creating session")
	}
	defer n.Execute(session.Dispose)

	b := &browser{
		thread:   n,
		tags:     n.TagManager(),
		session:  session,
		pageSize: uint32(config.PageSize),
		out:      out,
	}
	if err := b.browseLibrary(); err != nil {
		return errors.Trace(err)
	}
	if config.Search != "" {
		if err := b.search(config.Search); err != nil {
			return errors.Trace(err)
		}
	}
	return nil
}

func loadTracks(config Config) ([]library.Track, error) {
	if config.Scan != "" {
		return library.ScanTracks(config.Scan, logger.GetLogger("ohtopology.library"))
	}
	return library.LoadTracks(config.Catalog)
}

// waitForEndpoint waits for a device offering a media endpoint to join the
// network.
func waitForEndpoint(n *network.Network, log logger.Logger) (mediaendpoint.Endpoint, error) {
	var devices *watchable.Unordered[*network.Device]
	n.Execute(func() {
		devices = n.Create(library.ServiceMediaEndpoint)
	})

	var endpoint mediaendpoint.Endpoint
	err := retry.Call(retry.CallArgs{
		Func: func() error {
			var (
				service any
				err     error
			)
			n.Execute(func() {
				found := devices.Values()
				if len(found) == 0 {
					err = errors.NotFoundf("media endpoint device")
					return
				}
				service, err = found[0].Service(library.ServiceMediaEndpoint)
			})
			if err != nil {
				return err
			}
			endpoint = service.(mediaendpoint.Endpoint)
			return nil
		},
		IsFatalError: func(err error) bool {
			return !errors.Is(err, errors.NotFound)
		},
		NotifyFunc: func(err error, attempt int) {
			log.Debugf("attempt %d: %v", attempt, err)
		},
		Attempts:    20,
		Delay:       10 * time.Millisecond,
		MaxDelay:    time.Second,
		BackoffFunc: retry.DoubleDelay,
		Clock:       clock.WallClock,
	})
	return endpoint, errors.Annotate(err, "waiting for media endpoint")
}

func serveMetrics(addr string, collector prometheus.Collector, log logger.Logger) (func(), error) {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collector); err != nil {
		return nil, errors.Annotate(err, "registering metrics")
	}
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.Annotatef(err, "listening on %q", addr)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	server := &http.Server{Handler: mux}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Errorf("serving metrics: %v", err)
		}
	}()
	log.Infof("serving metrics on %s", listener.Addr())
	return func() {
		_ = server.Close()
		<-done
	}, nil
}

type browser struct {
	thread   *network.Network
	tags     *media.TagManager
	session  *mediaendpoint.Session
	pageSize uint32
	out      io.Writer
}

func (b *browser) browseLibrary() error {
	roots, err := b.readAll(b.query(func(onReady mediaendpoint.ReadyFunc) {
		b.session.Browse(nil, onReady)
	}))
	if err != nil {
		return errors.Annotate(err, "browsing root")
	}
	for _, root := range roots {
		title := describe(b.tags, root)
		snapshot, err := b.query(func(onReady mediaendpoint.ReadyFunc) {
			b.session.Browse(root, onReady)
		})
		if err != nil {
			return errors.Annotatef(err, "browsing %q", title)
		}
		fmt.Fprintf(b.out, "%s (%d)\n", title, snapshot.Total())
		if err := b.print(snapshot); err != nil {
			return errors.Annotatef(err, "reading %q", title)
		}
	}
	return nil
}

func (b *browser) search(text string) error {
	snapshot, err := b.query(func(onReady mediaendpoint.ReadyFunc) {
		b.session.Search(text, onReady)
	})
	if err != nil {
		return errors.Annotatef(err, "searching for %q", text)
	}
	fmt.Fprintf(b.out, "Search %q (%d)\n", text, snapshot.Total())
	return errors.Trace(b.print(snapshot))
}

// query issues a query on the thread and waits for its snapshot.
func (b *browser) query(issue func(mediaendpoint.ReadyFunc)) (media.Snapshot[*media.Datum], error) {
	ready := make(chan media.Snapshot[*media.Datum], 1)
	b.thread.Execute(func() {
		issue(func(snapshot media.Snapshot[*media.Datum]) {
			ready <- snapshot
		})
	})
	select {
	case snapshot := <-ready:
		return snapshot, nil
	case <-clock.WallClock.After(queryTimeout):
		return nil, errors.Timeoutf("query %v", b.currentQuery())
	}
}

func (b *browser) currentQuery() media.Query {
	var query media.Query
	b.thread.Execute(func() {
		query = b.session.Query()
	})
	return query
}

func (b *browser) print(snapshot media.Snapshot[*media.Datum]) error {
	return b.pages(snapshot, func(fragment media.Fragment[*media.Datum]) {
		for i, datum := range fragment.Data {
			fmt.Fprintf(b.out, "  %3d  %s\n", fragment.Index+uint32(i)+1, describe(b.tags, datum))
		}
	})
}

func (b *browser) readAll(snapshot media.Snapshot[*media.Datum], err error) ([]*media.Datum, error) {
	if err != nil {
		return nil, errors.Trace(err)
	}
	var items []*media.Datum
	err = b.pages(snapshot, func(fragment media.Fragment[*media.Datum]) {
		items = append(items, fragment.Data...)
	})
	return items, errors.Trace(err)
}

// pages reads the snapshot a page at a time. Reads start on the thread and
// are waited for off it.
func (b *browser) pages(snapshot media.Snapshot[*media.Datum], handle func(media.Fragment[*media.Datum])) error {
	total := snapshot.Total()
	for index := uint32(0); index < total; index += b.pageSize {
		count := min(b.pageSize, total-index)
		var read *task.Task[media.Fragment[*media.Datum]]
		b.thread.Execute(func() {
			read = snapshot.Read(index, count)
		})
		fragment, err := read.Wait()
		if err != nil {
			return errors.Trace(err)
		}
		handle(fragment)
	}
	return nil
}

// describe returns a one line summary of a datum.
func describe(tags *media.TagManager, datum *media.Datum) string {
	if title := datum.First(tags.Container.Title); title != "" {
		return title
	}
	audio := tags.Audio
	if kind := datum.Type(); len(kind) > 0 {
		if kind[0] == audio.Album {
			return fmt.Sprintf("%s (%s)", datum.First(audio.AlbumTitle), datum.First(audio.AlbumArtist))
		}
		return datum.First(kind[0])
	}
	line := datum.First(audio.Title)
	if artist := datum.First(audio.Artist); artist != "" {
		line += " - " + artist
	}
	return line
}
