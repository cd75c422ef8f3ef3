// Package cache provides a small generic LRU cache.
//
// The watermarker keeps decoded overlay images and font faces in it, so a
// watch folder stamping the same logo onto every upload decodes the logo
// once.
//
//	c := cache.New[string, image.Image](8)
//	img, err := c.GetOrCreate(key, func() (image.Image, error) { ... })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
