package binder

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/goliatone/go-sheetsite/pkg/page"
	"github.com/goliatone/go-sheetsite/pkg/sheet"
)

// Surface is the part of a page the binder mutates.
type Surface interface {
	QueryAll(selector string) ([]*page.Element, error)
}

var _ Surface = (*page.Document)(nil)

// Keys names the settings keys and selectors the binder reads and writes.
type Keys struct {
	TextAttr         string
	PhoneSelector    string
	PhoneKey         string
	EmailSelector    string
	EmailKey         string
	HeroImageID      string
	HeroImageKey     string
	MessagingClass   string
	MessagingNumber  string
	MessagingMessage string
	MessagingBaseURL string
}

// DefaultKeys returns the bindings used by the built-in page.
func DefaultKeys() Keys {
	return Keys{
		TextAttr:         "data-text",
		PhoneSelector:    "[data-phone]",
		PhoneKey:         "phone_main",
		EmailSelector:    "[data-email]",
		EmailKey:         "email",
		HeroImageID:      "hero-image",
		HeroImageKey:     "hero_image",
		MessagingClass:   "whatsapp-float",
		MessagingNumber:  "whatsapp_number",
		MessagingMessage: "whatsapp_message",
		MessagingBaseURL: "https://wa.me/",
	}
}

// Binder applies settings to a Surface.
type Binder struct {
	keys Keys
}

// Option customises a Binder.
type Option func(*Binder)

// WithKeys replaces the default keys. Empty fields keep their defaults.
func WithKeys(keys Keys) Option {
	return func(b *Binder) {
		b.keys = mergeKeys(b.keys, keys)
	}
}

// New constructs a Binder.
func New(options ...Option) *Binder {
	b := &Binder{keys: DefaultKeys()}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Keys returns the active bindings.
func (b *Binder) Keys() Keys {
	return b.keys
}

// Bind runs every binding: text from settings overlaid by hero, links and the
// messaging link from settings, and the hero image from hero.
func (b *Binder) Bind(surface Surface, settings, hero sheet.Settings) error {
	if err := b.BindText(surface, settings.Merge(hero)); err != nil {
		return err
	}
	if err := b.BindLinks(surface, settings); err != nil {
		return err
	}
	if err := b.BindHeroImage(surface, hero); err != nil {
		return err
	}
	return b.BindMessagingLink(surface, settings)
}

// BindText sets the text of every element carrying the text attribute to the
// value of the key it names, or "" when the key is missing.
func (b *Binder) BindText(surface Surface, data sheet.Settings) error {
	attr := b.keys.TextAttr
	elements, err := query(surface, "["+attr+"]")
	if err != nil {
		return err
	}
	for _, el := range elements {
		key, _ := el.Attr(attr)
		if err := el.SetText(data.Get(strings.TrimSpace(key))); err != nil {
			return fmt.Errorf("binder: bind text %q: %w", key, err)
		}
	}
	return nil
}

// BindLinks fills phone and email elements with their value and a tel: or
// mailto: href. Missing values produce empty text and a bare scheme.
func (b *Binder) BindLinks(surface Surface, settings sheet.Settings) error {
	if err := bindLink(surface, b.keys.PhoneSelector, "tel:", settings.Get(b.keys.PhoneKey)); err != nil {
		return err
	}
	return bindLink(surface, b.keys.EmailSelector, "mailto:", settings.Get(b.keys.EmailKey))
}

func bindLink(surface Surface, selector, scheme, value string) error {
	elements, err := query(surface, selector)
	if err != nil {
		return err
	}
	for _, el := range elements {
		if err := el.SetText(value); err != nil {
			return fmt.Errorf("binder: bind %s: %w", selector, err)
		}
		if err := el.SetAttr("href", scheme+value); err != nil {
			return fmt.Errorf("binder: bind %s: %w", selector, err)
		}
	}
	return nil
}

// BindHeroImage points the hero image at the hero image URL when present.
func (b *Binder) BindHeroImage(surface Surface, hero sheet.Settings) error {
	src := hero.Get(b.keys.HeroImageKey)
	if src == "" {
		return nil
	}
	elements, err := query(surface, "#"+b.keys.HeroImageID)
	if err != nil || len(elements) == 0 {
		return err
	}
	if err := elements[0].SetAttr("src", src); err != nil {
		return fmt.Errorf("binder: bind hero image: %w", err)
	}
	return nil
}

// BindMessagingLink sets the floating messaging link when a number is
// configured.
func (b *Binder) BindMessagingLink(surface Surface, settings sheet.Settings) error {
	number := settings.Get(b.keys.MessagingNumber)
	if number == "" {
		return nil
	}
	elements, err := query(surface, "."+b.keys.MessagingClass)
	if err != nil || len(elements) == 0 {
		return err
	}
	href := MessagingURL(b.keys.MessagingBaseURL, number, settings.Get(b.keys.MessagingMessage))
	if err := elements[0].SetAttr("href", href); err != nil {
		return fmt.Errorf("binder: bind messaging link: %w", err)
	}
	return nil
}

// MessagingURL builds `{base}{number}?text={message}` with message encoded
// the way browsers' encodeURIComponent does.
func MessagingURL(base, number, message string) string {
	return base + number + "?text=" + EncodeURIComponent(message)
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent percent-encodes s leaving A-Z a-z 0-9 - _ . ! ~ * ' ( )
// unescaped.
func EncodeURIComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}

func query(surface Surface, selector string) ([]*page.Element, error) {
	if surface == nil {
		return nil, fmt.Errorf("binder: query %q: %w", selector, page.ErrNilNode)
	}
	elements, err := surface.QueryAll(selector)
	if err != nil {
		return nil, fmt.Errorf("binder: query %q: %w", selector, err)
	}
	return elements, nil
}

func mergeKeys(base, override Keys) Keys {
	pick := func(dst *string, value string) {
		if strings.TrimSpace(value) != "" {
			*dst = value
		}
	}
	pick(&base.TextAttr, override.TextAttr)
	pick(&base.PhoneSelector, override.PhoneSelector)
	pick(&base.PhoneKey, override.PhoneKey)
	pick(&base.EmailSelector, override.EmailSelector)
	pick(&base.EmailKey, override.EmailKey)
	pick(&base.HeroImageID, override.HeroImageID)
	pick(&base.HeroImageKey, override.HeroImageKey)
	pick(&base.MessagingClass, override.MessagingClass)
	pick(&base.MessagingNumber, override.MessagingNumber)
	pick(&base.MessagingMessage, override.MessagingMessage)
	pick(&base.MessagingBaseURL, override.MessagingBaseURL)
	return base
}
