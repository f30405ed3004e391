package keynote

import (
	"context"
	"fmt"
	"strings"

	"keynote-mcp/internal/script"
	"keynote-mcp/internal/tool"
	"keynote-mcp/internal/unsplash"
	"keynote-mcp/internal/validate"
)

// searchPageSize is how many results add_unsplash_image_to_slide fetches;
// image_index picks one of them
const searchPageSize = 10

func (s *Service) imageTools() []tool.Definition {
	return []tool.Definition{
		{
			Descriptor: tool.Descriptor{
				Name:        "search_unsplash_images",
				Description: "Search Unsplash for photos",
				InputSchema: object(props{
					"query":       str("Search keywords"),
					"per_page":    integer("Number of results, 1 to 30 (default 10)"),
					"orientation": enum("Photo orientation (optional)", orientations...),
					"order_by":    enum("Result order (default relevant)", orderings...),
				}, "query"),
			},
			Handler: s.searchImages,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "add_unsplash_image_to_slide",
				Description: "Search Unsplash and place one of the results on a slide",
				InputSchema: object(with(props{
					"slide_number": slideProp(),
					"query":        str("Search keywords"),
					"image_index":  integer("Which search result to use, 0 to 9 (default 0)"),
					"orientation":  enum("Photo orientation (optional)", orientations...),
				}, "x", "y", "width", "height", "doc_name"), "slide_number", "query"),
			},
			Handler: s.addUnsplashImage,
		},
		{
			Descriptor: tool.Descriptor{
				Name:        "get_random_unsplash_image",
				Description: "Place a random Unsplash photo on a slide",
				InputSchema: object(with(props{
					"slide_number": slideProp(),
					"query":        str("Limit to photos matching these keywords (optional)"),
					"orientation":  enum("Photo orientation (optional)", orientations...),
				}, "x", "y", "width", "height", "doc_name"), "slide_number"),
			},
			Handler: s.addRandomImage,
		},
	}
}

func (s *Service) searchImages(ctx context.Context, args validate.Args) (string, error) {
	query, err := args.RequiredString("query")
	if err != nil {
		return "", err
	}
	perPage, err := args.IntRange("per_page", 10, 1, unsplash.MaxPerPage)
	if err != nil {
		return "", err
	}
	orientation, err := args.Enum("orientation", "", orientations...)
	if err != nil {
		return "", err
	}
	orderBy, err := args.Enum("order_by", "relevant", orderings...)
	if err != nil {
		return "", err
	}

	photos, err := s.images.Search(ctx, unsplash.SearchParams{
		Query:       strings.TrimSpace(query),
		PerPage:     perPage,
		Orientation: orientation,
		OrderBy:     orderBy,
	})
	if err != nil {
		return "", err
	}
	if len(photos) == 0 {
		return tool.Success("No images found for %q", query), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d image(s) for %q:", len(photos), query)
	for i := range photos {
		p := &photos[i]
		fmt.Fprintf(&sb, "\n%d. %s (%dx%d) by %s, %d likes\n   %s",
			i, p.Summary(50), p.Width, p.Height, p.Photographer(), p.Likes, p.Links.HTML)
	}
	return tool.Success("%s", sb.String()), nil
}

func (s *Service) addUnsplashImage(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	query, err := args.RequiredString("query")
	if err != nil {
		return "", err
	}
	index, err := args.IntRange("image_index", 0, 0, searchPageSize-1)
	if err != nil {
		return "", err
	}
	orientation, err := args.Enum("orientation", "", orientations...)
	if err != nil {
		return "", err
	}
	img, err := imageArgs(args, slide, script.PlacementAlways)
	if err != nil {
		return "", err
	}

	photos, err := s.images.Search(ctx, unsplash.SearchParams{
		Query:       strings.TrimSpace(query),
		PerPage:     searchPageSize,
		Orientation: orientation,
	})
	if err != nil {
		return "", err
	}
	if index >= len(photos) {
		return "", &validate.ParameterError{
			Field:  "image_index",
			Reason: fmt.Sprintf("%d is out of range, the search for %q returned %d image(s)", index, query, len(photos)),
		}
	}

	return s.placePhoto(ctx, &photos[index], img)
}

func (s *Service) addRandomImage(ctx context.Context, args validate.Args) (string, error) {
	slide, err := args.SlideNumber("slide_number", 0)
	if err != nil {
		return "", err
	}
	query, err := args.OptionalString("query", "")
	if err != nil {
		return "", err
	}
	orientation, err := args.Enum("orientation", "", orientations...)
	if err != nil {
		return "", err
	}
	img, err := imageArgs(args, slide, script.PlacementAlways)
	if err != nil {
		return "", err
	}

	photo, err := s.images.Random(ctx, strings.TrimSpace(query), orientation)
	if err != nil {
		return "", err
	}
	return s.placePhoto(ctx, photo, img)
}

// placePhoto downloads photo, inserts it and reports the download to
// Unsplash. A failed tracking ping is logged, not returned.
func (s *Service) placePhoto(ctx context.Context, photo *unsplash.Photo, img script.Image) (string, error) {
	path, err := s.images.Download(ctx, photo, s.downloadDir)
	if err != nil {
		return "", err
	}
	img.Path = path

	if _, err := s.run(ctx, img.Doc, script.AddImage(img)); err != nil {
		return "", err
	}

	if err := s.images.TrackDownload(ctx, photo); err != nil {
		s.logger.Warn("unsplash download tracking failed for %s: %v", photo.ID, err)
	}

	pos, _ := img.Placement.Position(img.Policy)
	return tool.Success("Added Unsplash image %q by %s to slide %d at %s\nSaved to: %s",
		photo.Summary(50), photo.Photographer(), img.Slide, pos, path), nil
}
