package catalog

import "furniture_back_end/internal/models"

var Partners = []models.Partner{
	{ID: 1, Name: "優質木材供應商", Logo: "https://images.unsplash.com/photo-1611486212557-88be5ff6f941", Description: "提供高品質、環保的木材，是我們傢俱製作的重要夥伴。", Website: "https://example.com/wood-supplier"},
	{ID: 2, Name: "創新設計工作室", Logo: "https://images.unsplash.com/photo-1581291518857-4e27b48ff24e", Description: "為我們的傢俱帶來現代感和獨特性，讓每件作品都成為藝術品。", Website: "https://example.com/design-studio"},
	{ID: 3, Name: "環保包裝公司", Logo: "https://images.unsplash.com/photo-1605600659908-0ef719419d41", Description: "使用可回收材料，確保我們的產品運輸過程中的安全和環保。", Website: "https://example.com/eco-packaging"},
	{ID: 4, Name: "智能家居科技公司", Logo: "https://images.unsplash.com/photo-1558346490-a72e53ae2d4f", Description: "為我們的傢俱添加智能功能，提升客戶的生活品質。", Website: "https://example.com/smart-home-tech"},
}
