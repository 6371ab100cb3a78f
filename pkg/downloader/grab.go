package downloader

import (
	"github.com/cavaliercoder/grab"
	"github.com/glcage/glcage/pkg/logger"
)

type GrabDownloader struct {
	client      *grab.Client
	concurrency int
	log         *logger.Logger
}

func NewGrabDownloader(log *logger.Logger) GrabDownloader {
	return GrabDownloader{
		client:      grab.NewClient(),
		concurrency: 5,
		log:         log,
	}
}

func (d GrabDownloader) Request(dest string, urls ...Download) (files []string, fails []string) {
	reqs := make([]*grab.Request, 0)
	keys := make(map[string]string, len(urls))
	for _, u := range urls {
		req, err := grab.NewRequest(dest, u.Address)
		if err != nil {
			d.log.Error().Err(err).Msgf("couldn't make request URL: %v", u.Address)
			fails = append(fails, u.Key)
		} else {
			keys[req.URL().String()] = u.Key
			reqs = append(reqs, req)
		}
	}

	// check each response
	for resp := range d.client.DoBatch(d.concurrency, reqs...) {
		if err := resp.Err(); err != nil {
			d.log.Error().Err(err).Msgf("download fail %v", resp.Request.URL())
			fails = append(fails, keys[resp.Request.URL().String()])
		} else {
			d.log.Info().Msgf("Downloaded [%v] %v", resp.HTTPResponse.Status, resp.Filename)
			files = append(files, resp.Filename)
		}
	}
	return
}
